package recursive

import (
	"context"

	"github.com/lguimbarda/treeflow/flow/core"
	"github.com/lguimbarda/treeflow/internal/logging"
)

// Transform returns a Transformer that flattens its input stream with
// expand. The input stream is the seed; every element is followed by the
// stream expand returns for it, in breadth-first order by default.
//
// The first error Result, from any stream, is forwarded and closes the
// output. EndOfStream ends the stream that carries it; other sentinels are
// dropped. Each nested stream is emitted only when it reaches the front of
// the queue and is cancelled as soon as it is exhausted or abandoned.
//
// The stage runs ahead of its consumer by up to WithBufferSize elements, so
// expand may be called, and nested streams started, before the consumer
// receives the elements they belong to. WithBufferSize(0) keeps it at most
// one element ahead; only Map and MapErr expand strictly at hand-over.
func Transform[T any](expand func(T) core.Stream[T], opts ...Option) core.Transformer[T, T] {
	cfg := applyOptions(opts...)
	children := guard(func(v T) (opener[T], error) {
		return openStream(expand(v)), nil
	})

	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T], cfg.BufferSize)

		log := logging.Ctx(ctx).With().Str("traversal", "stream").Logger()
		if cfg.Logger != nil {
			log = cfg.Logger.With().Str("traversal", "stream").Logger()
		}

		go func() {
			defer close(out)

			e := newEngine(ctx, openChannel(in), children, cfg, log)
			defer e.close()

			for {
				v, ok, err := e.next(ctx)
				if err != nil {
					if ctx.Err() == nil {
						select {
						case <-ctx.Done():
						case out <- core.Err[T](err):
						}
					}
					return
				}
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(v):
				}
			}
		}()

		return out
	})
}
