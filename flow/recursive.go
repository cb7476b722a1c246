package flow

import (
	"iter"

	"github.com/lguimbarda/treeflow/flow/recursive"
)

type (
	// RecursiveOption configures a recursive traversal.
	RecursiveOption = recursive.Option

	// Order selects the traversal order of a recursive traversal.
	Order = recursive.Order
)

const (
	BreadthFirst = recursive.BreadthFirst
	DepthFirst   = recursive.DepthFirst
)

var (
	WithOrder      = recursive.WithOrder
	WithMaxDepth   = recursive.WithMaxDepth
	WithLogger     = recursive.WithLogger
	WithMetrics    = recursive.WithMetrics
	WithBufferSize = recursive.WithBufferSize
)

// RecursiveMap creates a Transformer that emits every input item followed,
// level by level, by the items of the streams expand returns for it. The
// first error from any stream ends the output.
//
// Example:
//
//	entries := flow.RecursiveMap(func(d Dir) flow.Stream[Dir] {
//	    return listDir(d.Path)
//	}).Apply(ctx, flow.Once(root))
func RecursiveMap[T any](expand func(T) Stream[T], opts ...RecursiveOption) Transformer[T, T] {
	return recursive.Transform(expand, opts...)
}

// Recursive is the breadth-first flattening of source under expand.
func Recursive[T any](source iter.Seq[T], expand func(T) iter.Seq[T], opts ...RecursiveOption) iter.Seq[T] {
	return recursive.Map(source, expand, opts...)
}

// RecursiveErr is Recursive for sequences that may fail. The first failure is
// yielded as the last pair.
func RecursiveErr[T any](source iter.Seq2[T, error], expand func(T) (iter.Seq2[T, error], error), opts ...RecursiveOption) iter.Seq2[T, error] {
	return recursive.MapErr(source, expand, opts...)
}
