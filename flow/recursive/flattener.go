package recursive

import (
	"context"
	"iter"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/treeflow/internal/logging"
)

// Flattener is a pull-based traversal over sequences that cannot fail.
// It is single-use and must not be used from several goroutines at once.
type Flattener[T any] struct {
	e *engine[T]
}

// New returns a traversal of source and everything expand reaches from it.
// Nothing is pulled from source until the first call to Next. An expansion
// returning nil is treated as an empty sequence.
func New[T any](source iter.Seq[T], expand func(T) iter.Seq[T], opts ...Option) *Flattener[T] {
	cfg := applyOptions(opts...)
	children := func(v T) (opener[T], error) {
		return openSeq(expand(v)), nil
	}
	return &Flattener[T]{
		e: newEngine(context.Background(), openSeq(source), children, cfg, loggerFor(cfg, "flattener")),
	}
}

// Next returns the next element. It returns false when the traversal is
// complete, and also when ctx is done; in that case ctx.Err() is non-nil and
// the traversal may be resumed with another context.
func (f *Flattener[T]) Next(ctx context.Context) (T, bool) {
	v, ok, err := f.e.next(ctx)
	if err != nil {
		return v, false
	}
	return v, ok
}

// All ranges over the remaining elements and closes the flattener when the
// loop ends, however it ends.
func (f *Flattener[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer f.Close()
		for {
			v, ok := f.Next(ctx)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close releases every nested sequence still held without draining it.
// It is safe to call more than once.
func (f *Flattener[T]) Close() {
	f.e.close()
}

// Map returns the breadth-first flattening of source under expand. Each
// range over the result runs a fresh traversal.
func Map[T any](source iter.Seq[T], expand func(T) iter.Seq[T], opts ...Option) iter.Seq[T] {
	return func(yield func(T) bool) {
		New(source, expand, opts...).All(context.Background())(yield)
	}
}

// FallibleFlattener is a pull-based traversal over sequences that may fail.
// After it reports an error it is terminal.
type FallibleFlattener[T any] struct {
	e *engine[T]
}

// NewFallible is New for fallible sequences. expand may fail to build the
// children of an element; a panic in expand is reported as core.ErrPanic.
func NewFallible[T any](source iter.Seq2[T, error], expand func(T) (iter.Seq2[T, error], error), opts ...Option) *FallibleFlattener[T] {
	cfg := applyOptions(opts...)
	children := guard(func(v T) (opener[T], error) {
		seq, err := expand(v)
		if err != nil {
			return nil, err
		}
		return openSeq2(seq), nil
	})
	return &FallibleFlattener[T]{
		e: newEngine(context.Background(), openSeq2(source), children, cfg, loggerFor(cfg, "fallible_flattener")),
	}
}

// Next returns the next element, (zero, false, nil) when the traversal is
// complete, or the first failure. A failure is returned once and leaves the
// flattener complete. If ctx is done Next returns ctx.Err() instead, which
// is not terminal.
func (f *FallibleFlattener[T]) Next(ctx context.Context) (T, bool, error) {
	return f.e.next(ctx)
}

// All ranges over the remaining elements. A failure, or the end of ctx, is
// yielded as the last pair. The flattener is closed when the loop ends.
func (f *FallibleFlattener[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer f.Close()
		for {
			v, ok, err := f.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Close releases every nested sequence still held without draining it.
func (f *FallibleFlattener[T]) Close() {
	f.e.close()
}

// MapErr is Map for fallible sequences.
func MapErr[T any](source iter.Seq2[T, error], expand func(T) (iter.Seq2[T, error], error), opts ...Option) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		NewFallible(source, expand, opts...).All(context.Background())(yield)
	}
}

func loggerFor(cfg Config, kind string) zerolog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger.With().Str("traversal", kind).Logger()
	}
	return logging.With().Str("traversal", kind).Logger()
}
