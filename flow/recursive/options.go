package recursive

import (
	"github.com/rs/zerolog"

	"github.com/lguimbarda/treeflow/flow/core"
	"github.com/lguimbarda/treeflow/flow/observe"
)

// Order selects which pending nested sequence is pulled next.
type Order int

const (
	// BreadthFirst pulls nested sequences in the order they were discovered.
	BreadthFirst Order = iota
	// DepthFirst pulls the most recently discovered nested sequence first,
	// which yields elements in pre-order.
	DepthFirst
)

func (o Order) String() string {
	switch o {
	case BreadthFirst:
		return "breadth_first"
	case DepthFirst:
		return "depth_first"
	default:
		return "unknown"
	}
}

// Config holds the options of a traversal.
type Config struct {
	Order Order
	// MaxDepth stops expansion: elements at this depth are yielded but not
	// expanded. Seed elements are at depth 0. Negative means unlimited.
	MaxDepth int
	// BufferSize is the output buffer of Transform.
	BufferSize int
	Logger     *zerolog.Logger
	Metrics    *observe.TraversalMetrics
}

// Option configures a traversal.
type Option func(*Config)

// WithOrder sets the traversal order. The default is BreadthFirst.
func WithOrder(order Order) Option {
	return func(c *Config) {
		c.Order = order
	}
}

// WithMaxDepth limits how many times expansion is applied along any path.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithBufferSize sets the output channel buffer of Transform.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithLogger sets the logger of a traversal. By default the package-level
// logger of the process is used, or the context logger for Transform.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = &logger
	}
}

// WithMetrics records the traversal on the given instruments.
func WithMetrics(metrics *observe.TraversalMetrics) Option {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

func defaultConfig() Config {
	return Config{
		Order:      BreadthFirst,
		MaxDepth:   -1,
		BufferSize: core.DefaultBufferSize,
	}
}

func applyOptions(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BufferSize < 0 {
		cfg.BufferSize = 0
	}
	return cfg
}
