package recursive

import (
	"context"
	"iter"

	"github.com/lguimbarda/treeflow/flow/core"
)

// puller is a started nested sequence.
//
// next returns the next element, ok=false once the sequence is exhausted, or
// a non-nil error if the sequence failed or ctx ended while waiting. stop
// releases the producer without draining it; it is called exactly once.
type puller[T any] interface {
	next(ctx context.Context) (T, bool, error)
	stop()
}

// opener starts a nested sequence. The context bounds the producer's
// lifetime, not a single pull. A nil opener is an empty sequence.
type opener[T any] func(context.Context) puller[T]

// seqPuller pulls from an iter.Seq. It cannot be interrupted while the
// sequence body is running; cancellation is observed between pulls.
type seqPuller[T any] struct {
	pull func() (T, bool)
	halt func()
}

func openSeq[T any](seq iter.Seq[T]) opener[T] {
	if seq == nil {
		return nil
	}
	return func(context.Context) puller[T] {
		pull, halt := iter.Pull(seq)
		return &seqPuller[T]{pull: pull, halt: halt}
	}
}

func (p *seqPuller[T]) next(context.Context) (T, bool, error) {
	v, ok := p.pull()
	return v, ok, nil
}

func (p *seqPuller[T]) stop() { p.halt() }

// seq2Puller pulls from a fallible iter.Seq2.
type seq2Puller[T any] struct {
	pull func() (T, error, bool)
	halt func()
}

func openSeq2[T any](seq iter.Seq2[T, error]) opener[T] {
	if seq == nil {
		return nil
	}
	return func(context.Context) puller[T] {
		pull, halt := iter.Pull2(seq)
		return &seq2Puller[T]{pull: pull, halt: halt}
	}
}

func (p *seq2Puller[T]) next(context.Context) (T, bool, error) {
	v, err, ok := p.pull()
	if !ok {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (p *seq2Puller[T]) stop() { p.halt() }

// streamPuller receives from an emitted core.Stream. Waiting selects on the
// pull context, so a suspended pull returns as soon as it is cancelled.
type streamPuller[T any] struct {
	ch     <-chan core.Result[T]
	cancel context.CancelFunc
}

func openStream[T any](s core.Stream[T]) opener[T] {
	if s == nil {
		return nil
	}
	return func(ctx context.Context) puller[T] {
		ctx, cancel := context.WithCancel(ctx)
		return &streamPuller[T]{ch: s.Emit(ctx), cancel: cancel}
	}
}

// openChannel adopts a channel that is already being produced into. Its
// producer is owned by whoever emitted it, so stop does nothing.
func openChannel[T any](ch <-chan core.Result[T]) opener[T] {
	return func(context.Context) puller[T] {
		return &streamPuller[T]{ch: ch, cancel: func() {}}
	}
}

func (p *streamPuller[T]) next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		select {
		case <-ctx.Done():
			return zero, false, ctx.Err()
		case res, ok := <-p.ch:
			switch {
			case !ok || res.IsEndOfStream():
				return zero, false, nil
			case res.IsError():
				return zero, false, res.Error()
			case res.IsSentinel():
				continue
			}
			return res.Value(), true, nil
		}
	}
}

func (p *streamPuller[T]) stop() { p.cancel() }
