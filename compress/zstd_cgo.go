//go:build nobuild

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress implements Compressor for ZstdCompressor on cgo builds, trading
// the pure-Go zstd_pure.go implementation for gozstd's faster C bindings.
// Disabled by the nobuild tag until a cgo toolchain is part of the build.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress implements Decompressor for ZstdCompressor on cgo builds.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
