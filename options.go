package longmap

import (
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the number of slots a Map starts with.
	DefaultCapacity = 16
	// DefaultLoadFactor is the fraction of occupied slots that triggers growth.
	DefaultLoadFactor = 0.75
)

type config struct {
	capacity   int
	loadFactor float64
	index      indexFunc
	logger     *zap.Logger
}

func defaultConfig() config {
	return config{
		capacity:   DefaultCapacity,
		loadFactor: DefaultLoadFactor,
		index:      remainderIndex,
		logger:     zap.NewNop(),
	}
}

// Option configures a Map at construction time.
type Option func(*config)

// WithCapacity sets the initial number of slots. It must be positive.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithLoadFactor sets the occupancy fraction above which the table doubles.
// It must be in (0, 1].
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		c.loadFactor = f
	}
}

// WithXXHash places keys by the xxhash of their bytes instead of by plain
// remainder. Sequential or strided keys then spread across the whole table.
func WithXXHash() Option {
	return func(c *config) {
		c.index = xxhashIndex
	}
}

// WithLogger sets the logger used to report resizes. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
