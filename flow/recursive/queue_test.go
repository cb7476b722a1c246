package recursive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPending(t *testing.T) {
	testCases := []struct {
		order      Order
		wantFronts []int
	}{
		{order: BreadthFirst, wantFronts: []int{0, 1, 2}},
		{order: DepthFirst, wantFronts: []int{2, 1, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.order.String(), func(t *testing.T) {
			p := newPending[int](tc.order)
			_, ok := p.front()
			require.False(t, ok)

			for depth := range 3 {
				p.add(&level[int]{depth: depth})
			}
			require.Equal(t, 3, p.len())

			var fronts []int
			for p.len() > 0 {
				lvl, ok := p.front()
				require.True(t, ok)
				fronts = append(fronts, lvl.depth)
				p.dropFront()
			}
			require.Equal(t, tc.wantFronts, fronts)
		})
	}
}

type stubPuller struct {
	stops int
}

func (s *stubPuller) next(context.Context) (int, bool, error) { return 0, false, nil }
func (s *stubPuller) stop()                                   { s.stops++ }

func TestPending_DrainReleases(t *testing.T) {
	p := newPending[int](BreadthFirst)
	started := &stubPuller{}
	p.add(&level[int]{pull: started})
	p.add(&level[int]{depth: 1})

	drained := p.drain()
	require.Len(t, drained, 2)
	require.Zero(t, p.len())

	for _, lvl := range drained {
		lvl.release()
		lvl.release()
	}
	require.Equal(t, 1, started.stops, "a started level is stopped exactly once")
}

func TestOrder_String(t *testing.T) {
	require.Equal(t, "breadth_first", BreadthFirst.String())
	require.Equal(t, "depth_first", DepthFirst.String())
	require.Equal(t, "unknown", Order(9).String())
}
