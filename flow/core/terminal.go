package core

import (
	"context"
	"errors"
)

// Terminal functions consume a stream and cancel its run before returning.

// ErrEmptyStream is returned by First when the stream ends without a value.
var ErrEmptyStream = errors.New("stream is empty")

// Slice collects the values of a stream, stopping at the first error.
// Sentinels are not collected.
func Slice[OUT any](ctx context.Context, in Stream[OUT]) ([]OUT, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result []OUT
	for res := range in.Emit(ctx) {
		switch {
		case res.IsError():
			return nil, res.Error()
		case res.IsValue():
			result = append(result, res.Value())
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// First returns the first value of a stream.
func First[OUT any](ctx context.Context, in Stream[OUT]) (OUT, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for res := range in.Emit(ctx) {
		switch {
		case res.IsError():
			return *new(OUT), res.Error()
		case res.IsValue():
			return res.Value(), nil
		}
	}
	return *new(OUT), ErrEmptyStream
}

// Run drains a stream for its side effects, returning the first error.
func Run[OUT any](ctx context.Context, in Stream[OUT]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for res := range in.Emit(ctx) {
		if res.IsError() {
			return res.Error()
		}
	}
	return nil
}
