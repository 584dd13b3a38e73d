//go:build !nobuild

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool and zstdEncoderPool amortize the warmup cost
// klauspost/compress/zstd documents for long-lived encoders/decoders —
// relevant here because a peer connection calls Compress/Decompress
// repeatedly over its lifetime rather than once.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd decoder pool init: %v", err))
		}
		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd encoder pool init: %v", err))
		}
		return encoder
	},
}

// Compress implements Compressor for ZstdCompressor on every build
// without the nobuild tag, with or without cgo.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	// EncodeAll is stateless, so the pooled encoder is safe to share.
	return encoder.EncodeAll(data, nil), nil
}

// Decompress implements Decompressor for ZstdCompressor on every build
// without the nobuild tag. A peer sending a payload compressed with a different algorithm, or a
// truncated frame, surfaces here as a wrapped zstd error.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd decode: %w", err)
	}

	return decompressed, nil
}
