// Package core defines the stream abstractions the recursive traversals are
// built on: Stream, Transformer, their channel-level forms Emitter and
// Transmitter, per-item Mapper and FlatMapper, and the Result type.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other flow packages.
package core

import (
	"context"
	"iter"
)

// Stream is a restartable source of Results. Every call to Emit starts a
// fresh run of the stream bound to the given context.
type Stream[OUT any] interface {
	Emit(context.Context) <-chan Result[OUT]

	Collect(context.Context) []Result[OUT]
	All(context.Context) iter.Seq[Result[OUT]]
}

func Collect[OUT any](ctx context.Context, stream Stream[OUT]) []Result[OUT] {
	var results []Result[OUT]
	for res := range stream.Emit(ctx) {
		results = append(results, res)
	}
	return results
}

// All ranges over the Results of a stream. Breaking out of the loop cancels
// the run so the producing goroutine can exit.
func All[OUT any](ctx context.Context, stream Stream[OUT]) iter.Seq[Result[OUT]] {
	return func(yield func(Result[OUT]) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		for res := range stream.Emit(ctx) {
			if !yield(res) {
				return
			}
		}
	}
}

// Values adapts a stream to a fallible sequence. Values are yielded with a
// nil error, error Results with their error, and sentinels are skipped.
// The sequence ends after the first error.
func Values[OUT any](ctx context.Context, stream Stream[OUT]) iter.Seq2[OUT, error] {
	return func(yield func(OUT, error) bool) {
		for res := range All(ctx, stream) {
			switch {
			case res.IsSentinel():
				continue
			case res.IsError():
				yield(res.Value(), res.Error())
				return
			}
			if !yield(res.Value(), nil) {
				return
			}
		}
	}
}

// Transformer turns a Stream of IN into a Stream of OUT.
type Transformer[IN, OUT any] interface {
	Apply(context.Context, Stream[IN]) Stream[OUT]
}
