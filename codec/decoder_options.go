package codec

import "github.com/jeffro256/epee/internal/options"

// decoderConfig holds a Decoder's mutable configuration, applied by
// DecoderOption values before the first byte is read.
type decoderConfig struct {
	// maxSectionFields, when nonzero, caps the field count a section
	// may declare below format.MaxSectionFields. A decoder parsing
	// untrusted peer input typically wants a cap well below the
	// format's 10,000-field ceiling.
	maxSectionFields int

	// strictKeys makes a duplicate section key a decode error instead
	// of the default last-wins behavior.
	strictKeys bool
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption = options.Option[*decoderConfig]

// WithMaxSectionFields caps the number of fields any section in the
// input may declare. A section whose own declared count exceeds n
// fails with errs.ErrTooManySectionFields, even though the wire format
// itself would still accept it.
func WithMaxSectionFields(n int) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.maxSectionFields = n
	})
}

// WithStrictKeys makes the Decoder reject a section body that repeats
// a key, instead of silently allowing the caller's struct or
// section.Section target to take the last value written.
func WithStrictKeys() DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.strictKeys = true
	})
}

func newDecoderConfig(opts []DecoderOption) (*decoderConfig, error) {
	cfg := &decoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
