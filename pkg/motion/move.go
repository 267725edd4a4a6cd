// Package motion implements the planning half of the axis shaper: given a
// queued move's kinematics and its neighbours' states, it decides which of
// the four acceleration/deceleration boundaries to shape (or reduces the
// move to the DAA ringing period instead) and emits the resulting chain of
// distance-parameterised MoveSegment records.
//
// Grounded on original_source/AxisShaper.cpp's PlanShaping/GetAcceleration-
// Segments/GetDecelerationSegments/FinishSegments and MoveSegment.cpp's
// freelist, reworked here as a sync.Pool of linked nodes in place of the
// original's intrusive freelist.
package motion

// State is the lifecycle stage of a neighbouring move, mirroring DDA::DDAState
// closely enough for the planner's monotonicity assumption: a move only
// ever moves forward through these states.
type State int

const (
	StateProvisional State = iota
	StateFrozen
	StateExecuting
	StateCompleted
)

// Neighbour is the subset of a previous/next move's state the planner reads
// without locks, relying on the fact that moves never retrograde once they
// leave StateProvisional.
type Neighbour struct {
	State              State
	WasAccelOnlyMove   bool
	IsDecelerationMove bool
}

// Move is the pre-prepared kinematic record the planner consumes and
// mutates in place. Distances and acceleration/deceleration are mutated by
// both the impulse path and the DAA adjuster; everything else is read-only
// input from the look-ahead planner this package treats as external.
type Move struct {
	StartSpeed float64
	TopSpeed   float64
	EndSpeed   float64

	Acceleration float64
	Deceleration float64

	TotalDistance float64

	AccelDistance      float64
	DecelDistance      float64
	DecelStartDistance float64

	AccelClocks  float64
	DecelClocks  float64
	SteadyClocks float64

	Prev Neighbour
	Next Neighbour

	// Chain is the segment chain most recently attached by Planner.Plan.
	// The move owns it exclusively; release it with ReleaseChain once it
	// has been fully stepped or superseded.
	Chain *Segment
}

// DeriveClocks fills in AccelClocks, DecelClocks and SteadyClocks from the
// current speeds/accelerations/distances. The look-ahead planner that
// prepares a move's clocks from its kinematics lives outside this package's
// scope; this is a minimal stand-in so a move can be re-prepared after the
// DAA adjuster rewrites its acceleration, deceleration and distances in
// place.
func (m *Move) DeriveClocks(stepRate float64) {
	if m.Acceleration > 0 {
		m.AccelClocks = stepRate * (m.TopSpeed - m.StartSpeed) / m.Acceleration
	} else {
		m.AccelClocks = 0
	}
	if m.Deceleration > 0 {
		m.DecelClocks = stepRate * (m.TopSpeed - m.EndSpeed) / m.Deceleration
	} else {
		m.DecelClocks = 0
	}
	steadyDistance := m.TotalDistance - m.AccelDistance - m.DecelDistance
	if steadyDistance > 0 && m.TopSpeed > 0 {
		m.SteadyClocks = stepRate * steadyDistance / m.TopSpeed
	} else {
		m.SteadyClocks = 0
	}
	m.DecelStartDistance = m.TotalDistance - m.DecelDistance
}
