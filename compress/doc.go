// Package compress provides compression and decompression codecs for EPEE
// message payloads.
//
// This package offers multiple compression algorithms with different
// speed/ratio tradeoffs. Compression is applied as an outer layer around an
// already-encoded EPEE section — see the transport package for where this
// fits into the encode/decode path — rather than being part of the EPEE tag
// grammar itself.
//
// # Overview
//
// A P2P peer may wrap a bulk section (a large block range response, a
// transaction pool dump) in a compression layer before sending it, and the
// receiving peer decompresses before handing the bytes to the codec package.
// This package implements that layer, supporting multiple algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - The payload is small enough that framing overhead dominates
//   - CPU is more critical than bandwidth
//   - Data is already incompressible (random, encrypted)
//
// **Zstandard (Zstd)** (CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Excellent, typically the smallest output of the four
//   - Speed: Moderate
//   - Memory: Higher footprint than LZ4/S2
//
// Best for bulk responses sent to peers with ample CPU headroom (block
// range replies, chain sync payloads).
//
// **S2 (Snappy Alternative)** (CompressionS2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Good
//   - Speed: Fast, both directions
//
// Best for latency-sensitive exchanges where neither peer can spend much
// CPU per message (ping/pong, handshake payloads sent at high frequency).
//
// **LZ4** (CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Moderate
//   - Speed: Very fast decompression, moderate compression
//
// Best for a sender with limited CPU budget talking to a receiver that
// needs to unpack many messages quickly (relay nodes).
//
// # Algorithm Selection Guide
//
// | Scenario                     | Recommended | Reason                         |
// |-------------------------------|-------------|---------------------------------|
// | Bandwidth-constrained link    | Zstd        | Best compression ratio          |
// | High-frequency small messages | S2          | Balanced speed and compression  |
// | Relay / fan-out nodes         | LZ4         | Fastest decompression           |
// | Already-small payloads        | None        | Avoid framing overhead          |
//
// # Memory Management
//
// Implementations use buffer pooling where the underlying library supports
// it (see zstd_pure.go's sync.Pool-backed encoder/decoder reuse) to minimize
// allocations across repeated compress/decompress calls on a hot peer
// connection.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use by multiple
// goroutines.
//
// # Error Handling
//
// Decompression errors are the common case in practice — a peer sending
// corrupted or truncated compressed data, or data compressed with a
// different algorithm than the receiver expects. The Zstd codec wraps
// such errors with context naming the algorithm; the LZ4 and S2 codecs
// return the underlying library's error unwrapped.
package compress
