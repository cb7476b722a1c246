package flow

import (
	"context"
	"iter"

	"github.com/lguimbarda/treeflow/flow/core"
)

// FromSlice creates a Stream that emits each element from the given slice.
func FromSlice[T any](items []T) Stream[T] {
	const maxBufferSize = 512

	return Emit(func(ctx context.Context) <-chan Result[T] {
		// small slices fit in the buffer, no goroutine needed
		if len(items) <= maxBufferSize {
			out := make(chan Result[T], len(items))
			for _, item := range items {
				out <- Ok(item)
			}
			close(out)
			return out
		}

		out := make(chan Result[T], maxBufferSize)
		go func() {
			defer close(out)
			for _, item := range items {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(item):
				}
			}
		}()
		return out
	})
}

// FromChannel creates a Stream that emits values received from ch until it is
// closed. The caller owns ch; it can only be emitted once.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-ch:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case out <- Ok(item):
					}
				}
			}
		}()
		return out
	})
}

// FromIter creates a Stream from an iterator. Each emission ranges over seq
// again.
func FromIter[T any](seq iter.Seq[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for item := range seq {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(item):
				}
			}
		}()
		return out
	})
}

// FromSeq2 creates a Stream from a fallible iterator. A non-nil error is
// emitted as an error Result and ends the stream.
func FromSeq2[T any](seq iter.Seq2[T, error]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for item, err := range seq {
				res := Ok(item)
				if err != nil {
					res = Err[T](err)
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
				if err != nil {
					return
				}
			}
		}()
		return out
	})
}

// Empty creates a Stream that emits no values and completes immediately.
func Empty[T any]() Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		close(out)
		return out
	})
}

// Once creates a Stream that emits a single value and then completes.
func Once[T any](value T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T], 1)
		out <- Ok(value)
		close(out)
		return out
	})
}

// FromError creates a Stream that emits err and completes.
func FromError[T any](err error) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T], 1)
		out <- core.Err[T](err)
		close(out)
		return out
	})
}

// Concat creates a Stream that emits all values from the first stream,
// then all values from the second stream, and so on.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for _, stream := range streams {
				for res := range stream.Emit(ctx) {
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
