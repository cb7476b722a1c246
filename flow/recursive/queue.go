package recursive

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// level is one nested sequence waiting in, or at the front of, the queue.
// pull stays nil until the level is first pulled.
type level[T any] struct {
	depth int
	open  opener[T]
	pull  puller[T]
}

func (l *level[T]) started() bool { return l.pull != nil }

// release stops the level's producer if it was started. Unstarted levels
// hold no resources.
func (l *level[T]) release() {
	if l.pull != nil {
		l.pull.stop()
		l.pull = nil
	}
}

// pending orders the levels of a traversal. front is the level being pulled.
type pending[T any] interface {
	front() (*level[T], bool)
	dropFront()
	add(*level[T])
	len() int
	// drain empties the container and returns what it held.
	drain() []*level[T]
}

func newPending[T any](order Order) pending[T] {
	if order == DepthFirst {
		return lifo[T]{s: linkedliststack.New()}
	}
	return fifo[T]{q: linkedlistqueue.New()}
}

type fifo[T any] struct {
	q *linkedlistqueue.Queue
}

func (f fifo[T]) front() (*level[T], bool) {
	v, ok := f.q.Peek()
	if !ok {
		return nil, false
	}
	return v.(*level[T]), true
}

func (f fifo[T]) dropFront()      { f.q.Dequeue() }
func (f fifo[T]) add(l *level[T]) { f.q.Enqueue(l) }
func (f fifo[T]) len() int        { return f.q.Size() }

func (f fifo[T]) drain() []*level[T] {
	levels := toLevels[T](f.q.Values())
	f.q.Clear()
	return levels
}

type lifo[T any] struct {
	s *linkedliststack.Stack
}

func (l lifo[T]) front() (*level[T], bool) {
	v, ok := l.s.Peek()
	if !ok {
		return nil, false
	}
	return v.(*level[T]), true
}

func (l lifo[T]) dropFront()        { l.s.Pop() }
func (l lifo[T]) add(lvl *level[T]) { l.s.Push(lvl) }
func (l lifo[T]) len() int          { return l.s.Size() }

func (l lifo[T]) drain() []*level[T] {
	levels := toLevels[T](l.s.Values())
	l.s.Clear()
	return levels
}

func toLevels[T any](values []interface{}) []*level[T] {
	levels := make([]*level[T], len(values))
	for i, v := range values {
		levels[i] = v.(*level[T])
	}
	return levels
}
