package core

import (
	"context"
	"fmt"
)

// DefaultBufferSize is the buffer of the output channel of a stage when no
// WithBufferSize option is given.
const DefaultBufferSize = 64

// TransformConfig holds the options of a channel stage.
type TransformConfig struct {
	BufferSize int
}

// TransformOption configures a channel stage.
type TransformOption func(*TransformConfig)

// WithBufferSize sets the output channel buffer. Zero means unbuffered.
func WithBufferSize(size int) TransformOption {
	return func(c *TransformConfig) {
		c.BufferSize = size
	}
}

// ApplyOptions returns the default TransformConfig with opts applied in order.
func ApplyOptions(opts ...TransformOption) TransformConfig {
	cfg := TransformConfig{BufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BufferSize < 0 {
		cfg.BufferSize = 0
	}
	return cfg
}

// Mapper converts one Result into exactly one Result.
type Mapper[IN, OUT any] func(Result[IN]) (Result[OUT], error)

// Map lifts mapFunc into a Mapper. Errors from mapFunc, and panics, become
// error Results; incoming errors pass through.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) Mapper[IN, OUT] {
	return func(res Result[IN]) (out Result[OUT], err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in Map function: %w", NewPanicError(r))
			}
		}()

		if !res.IsValue() {
			return NewResult(*new(OUT), res.err, res.isSentinel), nil
		}
		mapped, err := mapFunc(res.Value())
		if err != nil {
			return Err[OUT](err), nil
		}
		return Ok(mapped), nil
	}
}

func (m Mapper[IN, OUT]) Apply(ctx context.Context, s Stream[IN]) Stream[OUT] {
	return m.ApplyWith(ctx, s)
}

func (m Mapper[IN, OUT]) ApplyWith(_ context.Context, s Stream[IN], opts ...TransformOption) Stream[OUT] {
	return FlatMapper[IN, OUT](func(res Result[IN]) ([]Result[OUT], error) {
		out, err := m(res)
		if err != nil {
			return nil, err
		}
		return []Result[OUT]{out}, nil
	}).applyWith(s, ApplyOptions(opts...))
}

// FlatMapper converts one Result into zero or more Results. A FlatMapper
// returning at most one value is the compact-map used to build seeds.
type FlatMapper[IN, OUT any] func(Result[IN]) ([]Result[OUT], error)

// FlatMap lifts flatMapFunc into a FlatMapper.
func FlatMap[IN, OUT any](flatMapFunc func(IN) ([]OUT, error)) FlatMapper[IN, OUT] {
	return func(res Result[IN]) (outs []Result[OUT], err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in FlatMap function: %w", NewPanicError(r))
			}
		}()

		if !res.IsValue() {
			return []Result[OUT]{NewResult(*new(OUT), res.err, res.isSentinel)}, nil
		}
		values, err := flatMapFunc(res.Value())
		if err != nil {
			return []Result[OUT]{Err[OUT](err)}, nil
		}
		outs = make([]Result[OUT], len(values))
		for i, v := range values {
			outs[i] = Ok(v)
		}
		return outs, nil
	}
}

// CompactMap keeps the results of fn for which it reports true.
func CompactMap[IN, OUT any](fn func(IN) (OUT, bool)) FlatMapper[IN, OUT] {
	return FlatMap(func(in IN) ([]OUT, error) {
		if out, ok := fn(in); ok {
			return []OUT{out}, nil
		}
		return nil, nil
	})
}

func (fm FlatMapper[IN, OUT]) Apply(ctx context.Context, s Stream[IN]) Stream[OUT] {
	return fm.ApplyWith(ctx, s)
}

func (fm FlatMapper[IN, OUT]) ApplyWith(_ context.Context, s Stream[IN], opts ...TransformOption) Stream[OUT] {
	return fm.applyWith(s, ApplyOptions(opts...))
}

func (fm FlatMapper[IN, OUT]) applyWith(s Stream[IN], cfg TransformConfig) Stream[OUT] {
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		out := make(chan Result[OUT], cfg.BufferSize)
		go func() {
			defer close(out)
			for in := range s.Emit(ctx) {
				outs, err := fm(in)
				if err != nil {
					outs = []Result[OUT]{Err[OUT](err)}
				}
				for _, res := range outs {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
		return out
	})
}
