package motion

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Segment is one timed chunk of a move. It is either linear (constant
// speed, distance grows as t/c) or non-linear (constant acceleration, t
// solves t² + 2·b·t − c·s = 0 for cumulative fraction s), matching the
// original source's single struct with a linear flag rather than two
// distinct Go types, since the builder swaps between the two kinds by
// calling SetLinear/SetNonLinear on the same allocation.
type Segment struct {
	FractionOfTotalDistance float64
	Clocks                  float64

	Linear bool
	B      float64
	C      float64

	next *Segment
}

// Next returns the following segment in the chain, or nil at the tail.
func (s *Segment) Next() *Segment {
	return s.next
}

var (
	segmentPool       sync.Pool
	segmentsAllocated atomic.Int64
	segmentsGot       atomic.Int64
)

func init() {
	segmentPool.New = func() any {
		segmentsAllocated.Add(1)
		return new(Segment)
	}
}

// Allocate returns a zeroed Segment from the pool, linked ahead of next
// (nil for a new tail), standing in for the original's intrusive
// MoveSegment freelist.
func Allocate(next *Segment) *Segment {
	segmentsGot.Add(1)
	s := segmentPool.Get().(*Segment)
	*s = Segment{next: next}
	return s
}

// PoolStats reports how many Segments the pool has ever constructed
// (allocated) versus handed out from Get in total (got); reused is simply
// got-allocated. This is the Go equivalent of the original source's
// MoveSegment::numCreated debug counter, which sync.Pool doesn't expose
// natively.
func PoolStats() (allocated, reused int64) {
	got := segmentsGot.Load()
	alloc := segmentsAllocated.Load()
	return alloc, got - alloc
}

// SetLinear configures s as a constant-speed segment: distance grows as t/c.
func (s *Segment) SetLinear(fraction, clocks, c float64) {
	s.FractionOfTotalDistance = fraction
	s.Clocks = clocks
	s.Linear = true
	s.B = 0
	s.C = c
}

// SetNonLinear configures s as a constant-acceleration segment: t solves
// t² + 2·b·t − c·s = 0 for cumulative distance fraction s.
func (s *Segment) SetNonLinear(fraction, clocks, b, c float64) {
	s.FractionOfTotalDistance = fraction
	s.Clocks = clocks
	s.Linear = false
	s.B = b
	s.C = c
}

// AddToTail walks to the end of s's chain and appends tail.
func (s *Segment) AddToTail(tail *Segment) {
	seg := s
	for seg.next != nil {
		seg = seg.next
	}
	seg.next = tail
}

// ReleaseChain returns every segment in the chain headed by head to the pool.
// The move executor calls it once a completed chain has been fully stepped.
// Planner.Plan settles the plan before it allocates any segment, so it never
// abandons a partially built chain and does not call ReleaseChain itself.
func ReleaseChain(head *Segment) {
	for head != nil {
		next := head.next
		head.next = nil
		segmentPool.Put(head)
		head = next
	}
}

// String renders one segment for debugging, in the spirit of the original
// source's MoveSegment::DebugPrint; callers walk the chain with Next and
// call String on each node to reproduce DebugPrintList.
func (s *Segment) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.Linear {
		return "L frac=" + ftoa(s.FractionOfTotalDistance) + " clocks=" + ftoa(s.Clocks) + " c=" + ftoa(s.C)
	}
	return "N frac=" + ftoa(s.FractionOfTotalDistance) + " clocks=" + ftoa(s.Clocks) + " b=" + ftoa(s.B) + " c=" + ftoa(s.C)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
