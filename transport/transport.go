// Package transport wraps an EPEE-encoded payload with an outer
// compression layer for bulk P2P transfers (e.g. a
// NOTIFY_RESPONSE_GET_OBJECTS-style response), composing with rather
// than replacing codec's Encode/Decode: the EPEE signature and tag
// grammar inside the payload are unchanged, compression is purely an
// outer framing concern.
package transport

import (
	"bytes"
	"io"

	"github.com/jeffro256/epee/codec"
	"github.com/jeffro256/epee/compress"
)

// EncodeCompressed encodes v as an EPEE section and compresses the
// result with the given Compressor before writing it to w.
func EncodeCompressed(w io.Writer, v any, c compress.Compressor, opts ...codec.EncoderOption) error {
	raw, err := codec.EncodeToBytes(v, opts...)
	if err != nil {
		return err
	}

	packed, err := c.Compress(raw)
	if err != nil {
		return err
	}

	_, err = w.Write(packed)

	return err
}

// DecodeCompressed reads all of r, decompresses it with the given
// Decompressor, and decodes the result as an EPEE section into out.
func DecodeCompressed(r io.Reader, out any, d compress.Decompressor, opts ...codec.DecoderOption) error {
	packed, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	raw, err := d.Decompress(packed)
	if err != nil {
		return err
	}

	return codec.DecodeFromBytes(raw, out, opts...)
}

// EncodeCompressedToBytes is the byte-slice counterpart of
// EncodeCompressed, for callers that already hold the payload in
// memory rather than writing to an io.Writer.
func EncodeCompressedToBytes(v any, c compress.Compressor, opts ...codec.EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeCompressed(&buf, v, c, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
