// Package flow is the user-facing entry point of treeflow. It re-exports the
// stream abstractions of flow/core together with the recursive traversals of
// flow/recursive, so most programs only import this package.
package flow

import (
	"context"
	"iter"

	"github.com/lguimbarda/treeflow/flow/core"
)

// Type aliases for core stream abstractions.
type (
	// Result is one item of a stream: a value, an error or a sentinel.
	Result[T any] = core.Result[T]

	// Stream is a restartable source of Results.
	Stream[T any] = core.Stream[T]

	// Transformer turns a Stream of IN into a Stream of OUT.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	Emitter[T any] = core.Emitter[T]

	Transmitter[IN, OUT any] = core.Transmitter[IN, OUT]

	// Mapper transforms individual items (1:1).
	Mapper[IN, OUT any] = core.Mapper[IN, OUT]

	// FlatMapper transforms individual items (1:N).
	FlatMapper[IN, OUT any] = core.FlatMapper[IN, OUT]

	// ErrPanic is a recovered panic travelling as an error.
	ErrPanic = core.ErrPanic
)

// ErrEndOfStream is the sentinel error of a normally terminated stream.
var ErrEndOfStream = core.ErrEndOfStream

// ErrEmptyStream is returned by First on a stream with no values.
var ErrEmptyStream = core.ErrEmptyStream

func Ok[T any](value T) Result[T] {
	return core.Ok(value)
}

func Err[T any](err error) Result[T] {
	return core.Err[T](err)
}

func Sentinel[T any](err error) Result[T] {
	return core.Sentinel[T](err)
}

func EndOfStream[T any]() Result[T] {
	return core.EndOfStream[T]()
}

// Map creates a Mapper from a simple transformation function.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) Mapper[IN, OUT] {
	return core.Map(mapFunc)
}

// FlatMap creates a FlatMapper from a function returning a slice.
func FlatMap[IN, OUT any](flatMapFunc func(IN) ([]OUT, error)) FlatMapper[IN, OUT] {
	return core.FlatMap(flatMapFunc)
}

// CompactMap creates a FlatMapper that keeps the items fn accepts.
func CompactMap[IN, OUT any](fn func(IN) (OUT, bool)) FlatMapper[IN, OUT] {
	return core.CompactMap(fn)
}

// Terminal operations.

// Slice collects all stream values into a slice.
func Slice[T any](ctx context.Context, in Stream[T]) ([]T, error) {
	return core.Slice(ctx, in)
}

// First returns the first value from the stream.
func First[T any](ctx context.Context, in Stream[T]) (T, error) {
	return core.First(ctx, in)
}

// Run executes the stream for side effects only.
func Run[T any](ctx context.Context, in Stream[T]) error {
	return core.Run(ctx, in)
}

// Collect gathers all Results (including errors) into a slice.
func Collect[T any](ctx context.Context, stream Stream[T]) []Result[T] {
	return core.Collect(ctx, stream)
}

// All returns an iterator over all Results in the stream.
func All[T any](ctx context.Context, stream Stream[T]) iter.Seq[Result[T]] {
	return core.All(ctx, stream)
}

// Values returns an iterator over the values of the stream that ends with
// its first error.
func Values[T any](ctx context.Context, stream Stream[T]) iter.Seq2[T, error] {
	return core.Values(ctx, stream)
}

// Emit creates an Emitter from a channel-producing function.
func Emit[T any](emitter func(context.Context) <-chan Result[T]) Emitter[T] {
	return core.Emit(emitter)
}

// Transmit creates a Transmitter from a channel transformation function.
func Transmit[IN, OUT any](transmitter func(context.Context, <-chan Result[IN]) <-chan Result[OUT]) Transmitter[IN, OUT] {
	return core.Transmit(transmitter)
}
