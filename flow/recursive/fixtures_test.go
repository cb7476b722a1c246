package recursive

import (
	"context"
	"iter"
	"slices"

	"github.com/lguimbarda/treeflow/flow/core"
)

// dir is a row of a parent-linked directory table. Parent 0 marks a root.
type dir struct {
	ID     int
	Parent int
	Name   string
}

type path struct {
	ID   int
	Path string
}

// directoryTable is the classic fixture: one root, two branches of unequal
// depth, rows deliberately out of tree order.
func directoryTable() []dir {
	return []dir{
		{ID: 1, Name: "root"},
		{ID: 2, Parent: 1, Name: "images"},
		{ID: 3, Parent: 1, Name: "Users"},
		{ID: 4, Parent: 3, Name: "Susan"},
		{ID: 5, Parent: 4, Name: "Desktop"},
		{ID: 6, Parent: 2, Name: "test.jpg"},
	}
}

func wantDirectoryPaths() []path {
	return []path{
		{ID: 1, Path: "/root"},
		{ID: 2, Path: "/root/images"},
		{ID: 3, Path: "/root/Users"},
		{ID: 6, Path: "/root/images/test.jpg"},
		{ID: 4, Path: "/root/Users/Susan"},
		{ID: 5, Path: "/root/Users/Susan/Desktop"},
	}
}

// compactMap keeps the results of fn that report true.
func compactMap[A, B any](seq iter.Seq[A], fn func(A) (B, bool)) iter.Seq[B] {
	return func(yield func(B) bool) {
		for a := range seq {
			if b, ok := fn(a); ok {
				if !yield(b) {
					return
				}
			}
		}
	}
}

func rootPaths(table []dir) iter.Seq[path] {
	return compactMap(slices.Values(table), func(d dir) (path, bool) {
		return path{ID: d.ID, Path: "/" + d.Name}, d.Parent == 0
	})
}

func childPaths(table []dir) func(path) iter.Seq[path] {
	return func(parent path) iter.Seq[path] {
		return compactMap(slices.Values(table), func(d dir) (path, bool) {
			return path{ID: d.ID, Path: parent.Path + "/" + d.Name}, d.Parent == parent.ID
		})
	}
}

// view is a node of an in-memory tree.
type view struct {
	ID       int
	Children []view
}

// viewForest is [1:[3, 4:[6], 5], 2].
func viewForest() []view {
	return []view{
		{ID: 1, Children: []view{
			{ID: 3},
			{ID: 4, Children: []view{{ID: 6}}},
			{ID: 5},
		}},
		{ID: 2},
	}
}

func viewChildren(v view) iter.Seq[view] { return slices.Values(v.Children) }

func ids(views []view) []int {
	out := make([]int, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

// infallible lifts a sequence into a fallible one that never fails.
func infallible[T any](seq iter.Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// probe instruments a sequence: it counts pulls and records whether the
// sequence was started and whether its body has returned.
type probe struct {
	pulls   int
	started bool
	stopped bool
}

func (p *probe) seq(values ...int) iter.Seq[int] {
	return func(yield func(int) bool) {
		p.started = true
		defer func() { p.stopped = true }()
		for _, v := range values {
			p.pulls++
			if !yield(v) {
				return
			}
		}
	}
}

// failingAfter yields values and then fails with err.
func failingAfter(p *probe, err error, values ...int) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		p.started = true
		defer func() { p.stopped = true }()
		for _, v := range values {
			p.pulls++
			if !yield(v, nil) {
				return
			}
		}
		yield(0, err)
	}
}

// sliceStream emits items, cancellably, from a goroutine.
func sliceStream[T any](items ...T) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for _, item := range items {
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(item):
				}
			}
		}()
		return out
	})
}
