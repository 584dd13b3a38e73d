package compress

import "github.com/klauspost/compress/s2"

// S2Compressor implements CompressionS2: Snappy-compatible compression
// tuned for speed over ratio, a fit for small, frequent payloads (pings,
// handshakes) where neither peer wants to spend much CPU per message.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns an S2Compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress implements Compressor for S2Compressor.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress implements Decompressor for S2Compressor.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
