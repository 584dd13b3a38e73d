package compress

// ZstdCompressor provides Zstandard compression for EPEE message payloads.
//
// This compressor favors compression ratio over speed, making it suited to
// bulk P2P responses (block ranges, transaction pool dumps) where bandwidth
// matters more than the extra CPU cost per message.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
