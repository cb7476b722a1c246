package recursive

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/treeflow/flow/core"
)

// expander turns a freshly pulled element into the opener of its children.
type expander[T any] func(T) (opener[T], error)

// engine is the traversal state machine shared by every surface. It is not
// safe for concurrent use; only one nested sequence is pulled at a time.
type engine[T any] struct {
	cfg    Config
	log    zerolog.Logger
	base   context.Context
	seed   opener[T]
	expand expander[T]
	levels pending[T]

	started  bool
	finished bool
	yielded  int
}

// newEngine prepares a traversal without touching seed. base bounds the
// lifetime of every nested producer the traversal starts.
func newEngine[T any](base context.Context, seed opener[T], expand expander[T], cfg Config, log zerolog.Logger) *engine[T] {
	return &engine[T]{
		cfg:    cfg,
		log:    log,
		base:   base,
		seed:   seed,
		expand: expand,
		levels: newPending[T](cfg.Order),
	}
}

// next advances the traversal.
//
// It returns (element, true, nil) for the next element, (zero, false, nil)
// once every nested sequence is exhausted, and (zero, false, err) on
// failure. When ctx ends, next returns ctx.Err() and leaves the queue as it
// was, so the traversal can be resumed. Any other error is terminal.
func (e *engine[T]) next(ctx context.Context) (T, bool, error) {
	var zero T
	if e.finished {
		return zero, false, nil
	}
	if !e.started {
		e.started = true
		e.enqueue(ctx, &level[T]{open: e.seed})
		e.log.Trace().Stringer("order", e.cfg.Order).Int("max_depth", e.cfg.MaxDepth).Msg("traversal started")
	}

	for {
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}

		lvl, ok := e.levels.front()
		if !ok {
			e.finished = true
			e.log.Trace().Int("yielded", e.yielded).Msg("traversal complete")
			return zero, false, nil
		}
		if !lvl.started() {
			lvl.pull = lvl.open(e.base)
			e.cfg.Metrics.LevelOpened(ctx)
			e.log.Trace().Int("depth", lvl.depth).Int("pending", e.levels.len()).Msg("level opened")
		}

		v, ok, err := lvl.pull.next(ctx)
		if err != nil {
			// only a wait interrupted by ctx is resumable; a producer error
			// that merely coincides with cancellation still ends the traversal
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return zero, false, ctxErr
			}
			return zero, false, e.fail(ctx, err)
		}
		if !ok {
			e.levels.dropFront()
			lvl.release()
			e.cfg.Metrics.Released(ctx, 1)
			e.log.Trace().Int("depth", lvl.depth).Msg("level exhausted")
			continue
		}

		if e.cfg.MaxDepth < 0 || lvl.depth < e.cfg.MaxDepth {
			children, err := e.expand(v)
			if err != nil {
				return zero, false, e.fail(ctx, err)
			}
			e.enqueue(ctx, &level[T]{depth: lvl.depth + 1, open: children})
		}

		e.yielded++
		e.cfg.Metrics.Yielded(ctx, lvl.depth)
		return v, true, nil
	}
}

// enqueue adds a level unless it is known to be empty.
func (e *engine[T]) enqueue(ctx context.Context, lvl *level[T]) {
	if lvl.open == nil {
		return
	}
	e.levels.add(lvl)
	e.cfg.Metrics.Enqueued(ctx, 1)
}

// fail ends the traversal with err, dropping every pending level.
func (e *engine[T]) fail(ctx context.Context, err error) error {
	e.cfg.Metrics.Failed(ctx)
	e.log.Debug().Err(err).Int("yielded", e.yielded).Int("dropped", e.levels.len()).Msg("traversal failed")
	e.discard(ctx)
	return err
}

// close abandons the traversal. It is a no-op once the traversal ended.
func (e *engine[T]) close() {
	if e.finished {
		return
	}
	if e.started {
		e.log.Trace().Int("yielded", e.yielded).Int("dropped", e.levels.len()).Msg("traversal abandoned")
	}
	e.discard(e.base)
}

func (e *engine[T]) discard(ctx context.Context) {
	e.finished = true
	dropped := e.levels.drain()
	for _, lvl := range dropped {
		lvl.release()
	}
	e.cfg.Metrics.Released(ctx, len(dropped))
}

// guard converts a panic in fn into a core.ErrPanic error.
func guard[T any](fn expander[T]) expander[T] {
	return func(v T) (children opener[T], err error) {
		defer func() {
			if r := recover(); r != nil {
				err = core.NewPanicError(r)
			}
		}()
		return fn(v)
	}
}
