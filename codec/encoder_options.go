package codec

import (
	"github.com/jeffro256/epee/internal/options"
	"github.com/jeffro256/epee/internal/pool"
)

// encoderConfig holds an Encoder's mutable configuration, applied by
// EncoderOption values before the first byte is written.
type encoderConfig struct {
	bufPool *pool.ByteBufferPool
}

// EncoderOption configures an Encoder at construction time.
type EncoderOption = options.Option[*encoderConfig]

// WithBufferPool supplies the pool the Encoder borrows its output
// scratch buffer from, instead of the package's shared default pool.
// Useful when a caller wants isolated pools per connection or per
// payload-size tier.
func WithBufferPool(p *pool.ByteBufferPool) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.bufPool = p
	})
}

func newEncoderConfig(opts []EncoderOption) (*encoderConfig, error) {
	cfg := &encoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
