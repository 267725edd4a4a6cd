package motion

import (
	"axisshaper/pkg/log"
	"axisshaper/pkg/shaper"
)

// adjustForDAA rewrites m's acceleration, deceleration and phase distances
// in place so both phases run at (a multiple of) the ringing period
// 1/ω_d, instead of introducing an impulse train. It never touches
// m.AccelClocks/m.DecelClocks/m.SteadyClocks; Planner.Plan re-derives those
// from the rewritten kinematics before building the unshaped segment
// chain, mirroring AxisShaper::PlanShaping's "case InputShaperType::daa"
// block falling through into SetFromDDA.
func adjustForDAA(m *Move, p *shaper.Params, logger *log.Logger) {
	idealPeriod := p.Durations[0] // for DAA this holds the full ringing period, not an impulse delay.

	proposedAcceleration, proposedAccelDistance := m.Acceleration, m.AccelDistance
	adjustAccel := false
	if m.TopSpeed > m.StartSpeed && (!(m.Prev.State == StateFrozen || m.Prev.State == StateExecuting) || !m.Prev.WasAccelOnlyMove) {
		accelTime := (m.TopSpeed - m.StartSpeed) / m.Acceleration
		switch {
		case accelTime < idealPeriod:
			proposedAcceleration = (m.TopSpeed - m.StartSpeed) / idealPeriod
			adjustAccel = true
		case accelTime < idealPeriod*2:
			proposedAcceleration = (m.TopSpeed - m.StartSpeed) / (idealPeriod * 2)
			adjustAccel = true
		}
		if adjustAccel {
			proposedAccelDistance = (m.TopSpeed*m.TopSpeed - m.StartSpeed*m.StartSpeed) / (2 * proposedAcceleration)
		}
	}

	proposedDeceleration, proposedDecelDistance := m.Deceleration, m.DecelDistance
	adjustDecel := false
	if m.Next.State != StateProvisional || !m.Next.IsDecelerationMove {
		decelTime := (m.TopSpeed - m.EndSpeed) / m.Deceleration
		switch {
		case decelTime < idealPeriod:
			proposedDeceleration = (m.TopSpeed - m.EndSpeed) / idealPeriod
			adjustDecel = true
		case decelTime < idealPeriod*2:
			proposedDeceleration = (m.TopSpeed - m.EndSpeed) / (idealPeriod * 2)
			adjustDecel = true
		}
		if adjustDecel {
			proposedDecelDistance = (m.TopSpeed*m.TopSpeed - m.EndSpeed*m.EndSpeed) / (2 * proposedDeceleration)
		}
	}

	if !adjustAccel && !adjustDecel {
		return
	}

	switch {
	case proposedAccelDistance+proposedDecelDistance <= m.TotalDistance:
		if proposedAcceleration < p.MinAcceleration || proposedDeceleration < p.MinAcceleration {
			return
		}
		m.Acceleration = proposedAcceleration
		m.Deceleration = proposedDeceleration
		m.AccelDistance = proposedAccelDistance
		m.DecelDistance = proposedDecelDistance

	default:
		// Can't keep this trapezoidal at the original top speed: try an
		// accelerate-decelerate profile with both phases exactly one
		// ideal period long.
		twiceTotal := 2 * m.TotalDistance
		proposedTopSpeed := m.TotalDistance/idealPeriod - (m.StartSpeed+m.EndSpeed)/2

		switch {
		case proposedTopSpeed > m.StartSpeed && proposedTopSpeed > m.EndSpeed:
			a := (twiceTotal - (3*m.StartSpeed+m.EndSpeed)*idealPeriod) / (2 * idealPeriod * idealPeriod)
			d := (twiceTotal - (m.StartSpeed+3*m.EndSpeed)*idealPeriod) / (2 * idealPeriod * idealPeriod)
			if a < p.MinAcceleration || d < p.MinAcceleration || a > m.Acceleration || d > m.Deceleration {
				return
			}
			m.TopSpeed = proposedTopSpeed
			m.Acceleration = a
			m.Deceleration = d
			m.AccelDistance = m.StartSpeed*idealPeriod + (a*idealPeriod*idealPeriod)/2
			m.DecelDistance = m.EndSpeed*idealPeriod + (d*idealPeriod*idealPeriod)/2

		case m.StartSpeed < m.EndSpeed:
			// Degenerate to an accelerate-only move, as slowly as possible.
			a := (m.EndSpeed*m.EndSpeed - m.StartSpeed*m.StartSpeed) / twiceTotal
			if a < p.MinAcceleration {
				return
			}
			m.Acceleration = a
			m.TopSpeed = m.EndSpeed
			m.AccelDistance = m.TotalDistance
			m.DecelDistance = 0.0

		case m.StartSpeed > m.EndSpeed:
			// Degenerate to a decelerate-only move, as slowly as possible.
			d := (m.StartSpeed*m.StartSpeed - m.EndSpeed*m.EndSpeed) / twiceTotal
			if d < p.MinAcceleration {
				return
			}
			m.Deceleration = d
			m.TopSpeed = m.StartSpeed
			m.AccelDistance = 0.0
			m.DecelDistance = m.TotalDistance

		default:
			// Start and end speeds are identical: nothing sensible to do.
			return
		}
	}

	if logger != nil {
		logger.WithFields(log.Fields{
			"idealPeriod":   idealPeriod,
			"topSpeed":      m.TopSpeed,
			"accelDistance": m.AccelDistance,
			"decelDistance": m.DecelDistance,
		}).Debugf("DAA: new a=%.1f d=%.1f", m.Acceleration, m.Deceleration)
	}
}
