package compress

// NoOpCompressor passes data through unchanged. It is the
// CompressionNone algorithm: the wire-visible choice for peers that
// decide a payload isn't worth spending CPU to shrink (small handshake
// or ping/pong sections, or data that's already compressed upstream).
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns a NoOpCompressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged, sharing its backing array rather than
// copying. Callers that keep using data after this call must treat the
// returned slice as aliased to it.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, mirroring Compress.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
