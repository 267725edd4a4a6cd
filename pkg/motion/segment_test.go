package motion

import "testing"

// TestPoolReusesReleasedSegments checks that releasing a chain and then
// allocating the same number of segments again increases reused, not
// allocated, matching sync.Pool's intended reuse behavior.
func TestPoolReusesReleasedSegments(t *testing.T) {
	allocBefore, reuseBefore := PoolStats()

	head := Allocate(nil)
	head = Allocate(head)
	head = Allocate(head)
	ReleaseChain(head)

	head = Allocate(nil)
	head = Allocate(head)
	head = Allocate(head)
	ReleaseChain(head)

	allocAfter, reuseAfter := PoolStats()
	if allocAfter-allocBefore > 3 {
		t.Errorf("expected the second batch to reuse pooled segments, allocated grew by %d", allocAfter-allocBefore)
	}
	if reuseAfter-reuseBefore < 3 {
		t.Errorf("expected at least 3 reused gets, got %d", reuseAfter-reuseBefore)
	}
}

func TestSegmentStringDistinguishesLinearAndNonLinear(t *testing.T) {
	lin := Allocate(nil)
	lin.SetLinear(1.0, 100, 5)
	defer ReleaseChain(lin)

	nonlin := Allocate(nil)
	nonlin.SetNonLinear(1.0, 100, 2, 5)
	defer ReleaseChain(nonlin)

	if got := lin.String(); got[0] != 'L' {
		t.Errorf("linear segment String() = %q, want prefix L", got)
	}
	if got := nonlin.String(); got[0] != 'N' {
		t.Errorf("non-linear segment String() = %q, want prefix N", got)
	}
}
