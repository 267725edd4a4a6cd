package motion

import (
	"axisshaper/pkg/shaper"
	"axisshaper/pkg/stepclock"
)

// buildAccelerationSegments emits the segment chain for the acceleration
// phase, given the final (post-feasibility-check) plan and move state.
// origAccelDistance is the phase's distance before any shaping extra was
// added — matching the original source's dda.beforePrepare.accelDistance,
// which decides whether there is an acceleration phase at all, as opposed
// to the post-shaping params.accelDistance used for segment placement.
// Grounded verbatim on AxisShaper::GetAccelerationSegments.
func buildAccelerationSegments(m *Move, p *shaper.Params, plan *Plan, origAccelDistance float64) *Segment {
	if origAccelDistance <= 0.0 {
		plan.AccelSegments = 0
		return nil
	}

	stepRate := p.StepRate
	n := p.NumExtraImpulses
	numAccelSegs := 0
	accumulatedSegTime := 0.0

	endDistance := m.AccelDistance
	var endAccelSegs *Segment
	if plan.ShapeAccelEnd {
		segStartSpeed := m.TopSpeed
		for i := n - 1; i >= 0; i-- {
			numAccelSegs++
			endAccelSegs = Allocate(endAccelSegs)
			acceleration := m.Acceleration * (1.0 - p.Coefficients[i])
			segTime := p.Durations[i]
			segStartSpeed -= acceleration * segTime
			b := segStartSpeed * float64(stepRate) / acceleration
			c := 2 * stepRate.Squared() * m.TotalDistance / acceleration
			endAccelSegs.SetNonLinear(endDistance/m.TotalDistance, segTime*float64(stepRate), b, c)
			endDistance -= (segStartSpeed + 0.5*acceleration*segTime) * segTime
			accumulatedSegTime += segTime
		}
	}

	startDistance := 0.0
	startSpeed := m.StartSpeed
	var startAccelSegs *Segment
	if plan.ShapeAccelStart {
		for i := 0; i < n; i++ {
			numAccelSegs++
			seg := Allocate(nil)
			acceleration := m.Acceleration * p.Coefficients[i]
			segTime := p.Durations[i]
			b := startSpeed * float64(stepRate) / acceleration
			c := 2 * stepRate.Squared() * m.TotalDistance / acceleration
			startDistance += (startSpeed + 0.5*acceleration*segTime) * segTime
			seg.SetNonLinear(startDistance/m.TotalDistance, segTime*float64(stepRate), b, c)
			if i == 0 {
				startAccelSegs = seg
			} else {
				startAccelSegs.AddToTail(seg)
			}
			startSpeed += acceleration * segTime
			accumulatedSegTime += segTime
		}
	}

	if endDistance > startDistance {
		numAccelSegs++
		endAccelSegs = Allocate(endAccelSegs)
		b := startSpeed * float64(stepRate) / m.Acceleration
		c := 2 * stepRate.Squared() * m.TotalDistance / m.Acceleration
		endAccelSegs.SetNonLinear(endDistance/m.TotalDistance, m.AccelClocks-accumulatedSegTime*float64(stepRate), b, c)
	}

	plan.AccelSegments = numAccelSegs
	if startAccelSegs == nil {
		return endAccelSegs
	}
	if endAccelSegs != nil {
		startAccelSegs.AddToTail(endAccelSegs)
	}
	return startAccelSegs
}

// buildDecelerationSegments is buildAccelerationSegments' mirror image,
// grounded verbatim on AxisShaper::GetDecelerationSegments.
func buildDecelerationSegments(m *Move, p *shaper.Params, plan *Plan, origDecelDistance float64) *Segment {
	if origDecelDistance <= 0.0 {
		plan.DecelSegments = 0
		return nil
	}

	stepRate := p.StepRate
	n := p.NumExtraImpulses
	numDecelSegs := 0
	accumulatedSegTime := 0.0

	endDistance := m.TotalDistance
	var endDecelSegs *Segment
	if plan.ShapeDecelEnd {
		segStartSpeed := m.EndSpeed
		for i := n - 1; i >= 0; i-- {
			numDecelSegs++
			endDecelSegs = Allocate(endDecelSegs)
			acceleration := -m.Deceleration * (1.0 - p.Coefficients[i])
			segTime := p.Durations[i]
			segStartSpeed -= acceleration * segTime
			b := segStartSpeed * float64(stepRate) / acceleration
			c := 2 * stepRate.Squared() * m.TotalDistance / acceleration
			endDecelSegs.SetNonLinear(endDistance/m.TotalDistance, segTime*float64(stepRate), b, c)
			endDistance -= (segStartSpeed + 0.5*acceleration*segTime) * segTime
			accumulatedSegTime += segTime
		}
	}

	startDistance := m.DecelStartDistance
	startSpeed := m.TopSpeed
	var startDecelSegs *Segment
	if plan.ShapeDecelStart {
		for i := 0; i < n; i++ {
			numDecelSegs++
			seg := Allocate(nil)
			acceleration := -m.Deceleration * p.Coefficients[i]
			segTime := p.Durations[i]
			b := startSpeed * float64(stepRate) / acceleration
			c := 2 * stepRate.Squared() * m.TotalDistance / acceleration
			startDistance += (startSpeed + 0.5*acceleration*segTime) * segTime
			seg.SetNonLinear(startDistance/m.TotalDistance, segTime*float64(stepRate), b, c)
			if i == 0 {
				startDecelSegs = seg
			} else {
				startDecelSegs.AddToTail(seg)
			}
			startSpeed += acceleration * segTime
			accumulatedSegTime += segTime
		}
	}

	if endDistance > startDistance {
		numDecelSegs++
		endDecelSegs = Allocate(endDecelSegs)
		b := -startSpeed * float64(stepRate) / m.Deceleration
		c := -2 * stepRate.Squared() * m.TotalDistance / m.Deceleration
		endDecelSegs.SetNonLinear(endDistance/m.TotalDistance, m.DecelClocks-accumulatedSegTime*float64(stepRate), b, c)
	}

	plan.DecelSegments = numDecelSegs
	if startDecelSegs == nil {
		return endDecelSegs
	}
	if endDecelSegs != nil {
		startDecelSegs.AddToTail(endDecelSegs)
	}
	return startDecelSegs
}

// finishSegments inserts the steady-speed segment (if any) ahead of the
// deceleration chain and joins accel/decel into one chain, grounded on
// AxisShaper::FinishSegments.
func finishSegments(m *Move, stepRate stepclock.Rate, accelSegs, decelSegs *Segment) *Segment {
	if m.SteadyClocks > 0.0 {
		decelSegs = Allocate(decelSegs)
		c := m.TotalDistance * float64(stepRate) / m.TopSpeed
		decelSegs.SetLinear(m.DecelStartDistance/m.TotalDistance, m.SteadyClocks, c)
	}

	if accelSegs != nil {
		if decelSegs != nil {
			accelSegs.AddToTail(decelSegs)
		}
		return accelSegs
	}
	return decelSegs
}

// extraAccelStartDistance and its three siblings below are the closed-form
// distance deltas an impulse train adds at each shaped boundary, grounded
// verbatim on
// AxisShaper::GetExtraAccelStartDistance/GetExtraAccelEndDistance/
// GetExtraDecelStartDistance/GetExtraDecelEndDistance.
func extraAccelStartDistance(m *Move, p *shaper.Params) float64 {
	var extra, u float64
	u = m.StartSpeed
	for i := 0; i < p.NumExtraImpulses; i++ {
		segTime := p.Durations[i]
		speedChange := p.Coefficients[i] * m.Acceleration * segTime
		extra += (1.0 - p.Coefficients[i]) * (u + 0.5*speedChange) * segTime
		u += speedChange
	}
	return extra
}

func extraAccelEndDistance(m *Move, p *shaper.Params) float64 {
	var extra, v float64
	v = m.TopSpeed
	for i := p.NumExtraImpulses - 1; i >= 0; i-- {
		segTime := p.Durations[i]
		speedChange := (1.0 - p.Coefficients[i]) * m.Acceleration * segTime
		extra += p.Coefficients[i] * (v - 0.5*speedChange) * segTime
		v -= speedChange
	}
	return extra
}

func extraDecelStartDistance(m *Move, p *shaper.Params) float64 {
	var extra, u float64
	u = m.TopSpeed
	for i := 0; i < p.NumExtraImpulses; i++ {
		segTime := p.Durations[i]
		speedChange := p.Coefficients[i] * m.Deceleration * segTime
		extra += (1.0 - p.Coefficients[i]) * (u - 0.5*speedChange) * segTime
		u -= speedChange
	}
	return extra
}

func extraDecelEndDistance(m *Move, p *shaper.Params) float64 {
	var extra, v float64
	v = m.EndSpeed
	for i := p.NumExtraImpulses - 1; i >= 0; i-- {
		segTime := p.Durations[i]
		speedChange := (1.0 - p.Coefficients[i]) * m.Deceleration * segTime
		extra += p.Coefficients[i] * (v + 0.5*speedChange) * segTime
		v += speedChange
	}
	return extra
}
