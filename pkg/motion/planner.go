package motion

import (
	"axisshaper/pkg/log"
	"axisshaper/pkg/shaper"
	"axisshaper/pkg/stepclock"
)

// Planner turns one move's kinematics plus the currently active shaper
// Params into a Plan and a segment chain. It holds no per-move state; a
// single Planner is reused across the whole queue.
type Planner struct {
	// Logger, if set, receives DEBUG-level tracing of plan decisions and
	// DAA adjustments.
	Logger *log.Logger
}

// NewPlanner returns a Planner with tracing disabled.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan shapes m according to params, mutating m's phase distances/clocks
// in place, attaching the emitted chain to m.Chain, and returning the
// decisions made. shapingEnabled lets a caller disable shaping per-move
// without touching the shared Params.
//
// There is no error return: an infeasible plan collapses to the unshaped
// move rather than signalling failure.
func (pl *Planner) Plan(m *Move, params *shaper.Params, shapingEnabled bool) *Plan {
	origAccelDistance := m.AccelDistance
	origDecelDistance := m.DecelDistance

	effectiveType := shaper.TypeNone
	if shapingEnabled {
		effectiveType = params.Type
	}

	plan := &Plan{}

	switch effectiveType {
	case shaper.TypeDAA:
		adjustForDAA(m, params, pl.Logger)
		m.DeriveClocks(float64(params.StepRate))
		fallthrough // DAA only rewrites kinematics; it never emits impulse segments.

	case shaper.TypeNone:
		accelSegs := unshapedAccelSegment(m, params.StepRate)
		decelSegs := unshapedDecelSegment(m, params.StepRate)
		m.Chain = finishSegments(m, params.StepRate, accelSegs, decelSegs)
		return plan

	default:
		pl.planImpulsePath(m, params, plan)
	}

	accelSegs := buildAccelerationSegments(m, params, plan, origAccelDistance)
	decelSegs := buildDecelerationSegments(m, params, plan, origDecelDistance)
	m.Chain = finishSegments(m, params.StepRate, accelSegs, decelSegs)
	return plan
}

// planImpulsePath handles the zvd/zvdd/ei2/ei3 family: propose a plan from
// clock-budget/neighbour tests, then verify and commit each half
// independently.
func (pl *Planner) planImpulsePath(m *Move, p *shaper.Params, plan *Plan) {
	plan.ShapeAccelStart = m.AccelClocks+p.ClocksLostAtStart >= p.TotalShapingClocks &&
		(!(m.Prev.State == StateFrozen || m.Prev.State == StateExecuting) || !m.Prev.WasAccelOnlyMove)
	plan.ShapeAccelEnd = m.AccelClocks+p.ClocksLostAtEnd >= p.TotalShapingClocks &&
		m.DecelStartDistance > m.AccelDistance
	plan.ShapeDecelStart = m.DecelClocks+p.ClocksLostAtStart >= p.TotalShapingClocks &&
		m.DecelStartDistance > m.AccelDistance
	plan.ShapeDecelEnd = m.DecelClocks+p.ClocksLostAtEnd >= p.TotalShapingClocks &&
		(m.Next.State != StateProvisional || !m.Next.IsDecelerationMove)

	if plan.ShapeAccelStart || plan.ShapeAccelEnd {
		if plan.ShapeAccelStart && plan.ShapeAccelEnd && m.AccelClocks < 2*p.TotalShapingClocks {
			plan.ShapeAccelStart, plan.ShapeAccelEnd = false, false
		} else {
			extra := 0.0
			if plan.ShapeAccelStart {
				extra += extraAccelStartDistance(m, p)
			}
			if plan.ShapeAccelEnd {
				extra += extraAccelEndDistance(m, p)
			}
			if m.AccelDistance+extra <= m.DecelStartDistance {
				m.AccelDistance += extra
				if plan.ShapeAccelStart {
					m.AccelClocks += p.ClocksLostAtStart
				}
				if plan.ShapeAccelEnd {
					m.AccelClocks += p.ClocksLostAtEnd
				}
			} else {
				plan.ShapeAccelStart, plan.ShapeAccelEnd = false, false
				if pl.Logger != nil {
					pl.Logger.WithFields(log.Fields{
						"accelDistance":      m.AccelDistance,
						"extra":              extra,
						"decelStartDistance": m.DecelStartDistance,
					}).Debugf("can't shape acceleration")
				}
			}
		}
	}

	if plan.ShapeDecelStart || plan.ShapeDecelEnd {
		if plan.ShapeDecelStart && plan.ShapeDecelEnd && m.DecelClocks < 2*p.TotalShapingClocks {
			plan.ShapeDecelStart, plan.ShapeDecelEnd = false, false
		} else {
			extra := 0.0
			if plan.ShapeDecelStart {
				extra += extraDecelStartDistance(m, p)
			}
			if plan.ShapeDecelEnd {
				extra += extraDecelEndDistance(m, p)
			}
			if m.AccelDistance+extra <= m.DecelStartDistance {
				m.DecelStartDistance -= extra
				if plan.ShapeDecelStart {
					m.DecelClocks += p.ClocksLostAtStart
				}
				if plan.ShapeDecelEnd {
					m.DecelClocks += p.ClocksLostAtEnd
				}
			} else {
				plan.ShapeDecelStart, plan.ShapeDecelEnd = false, false
				if pl.Logger != nil {
					pl.Logger.WithFields(log.Fields{
						"accelDistance":      m.AccelDistance,
						"extra":              extra,
						"decelStartDistance": m.DecelStartDistance,
					}).Debugf("can't shape deceleration")
				}
			}
		}
	}
}

// unshapedAccelSegment and unshapedDecelSegment are the accel/decel halves
// of AxisShaper::GetUnshapedSegments, split so finishSegments can still
// insert a shared steady-speed segment between them.
func unshapedAccelSegment(m *Move, stepRate stepclock.Rate) *Segment {
	if m.AccelClocks <= 0.0 {
		return nil
	}
	seg := Allocate(nil)
	b := m.StartSpeed * float64(stepRate) / m.Acceleration
	c := 2 * stepRate.Squared() * m.TotalDistance / m.Acceleration
	seg.SetNonLinear(m.AccelDistance/m.TotalDistance, m.AccelClocks, b, c)
	return seg
}

func unshapedDecelSegment(m *Move, stepRate stepclock.Rate) *Segment {
	if m.DecelClocks <= 0.0 {
		return nil
	}
	seg := Allocate(nil)
	b := -m.TopSpeed * float64(stepRate) / m.Deceleration
	c := -2 * stepRate.Squared() * m.TotalDistance / m.Deceleration
	seg.SetNonLinear(1.0, m.DecelClocks, b, c)
	return seg
}
