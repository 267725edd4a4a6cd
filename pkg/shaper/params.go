// Package shaper implements the axis shaper's configuration half: synthesis
// of impulse coefficients/durations for ZVD, ZVDD, EI2, EI3, DAA and custom
// shapers, and the immutable Params table the planner (pkg/motion) consults.
// Grounded on original_source/AxisShaper.cpp's Configure method for every
// constant and formula; the Go shape (small string enum, constructor
// returning an error, exported fields) follows this codebase's own
// convention for the same family of shaper names.
package shaper

import (
	"math"

	"axisshaper/pkg/shaper/shapererr"
	"axisshaper/pkg/stepclock"
)

// Params is the immutable, synthesised impulse table for one shaper
// configuration. A new Params is produced by Synthesize each time the
// Configurator accepts a configuration change; the planner only ever reads
// one.
type Params struct {
	Type            Type
	Frequency       float64
	Damping         float64
	MinAcceleration float64

	NumExtraImpulses int
	Coefficients     [MaxExtraImpulses]float64
	Durations        [MaxExtraImpulses]float64

	TotalDuration      float64
	TotalShapingClocks float64
	ClocksLostAtStart  float64
	ClocksLostAtEnd    float64

	// Overlapped holds 2*NumExtraImpulses entries for moves too short to
	// shape start and end separately.
	Overlapped                    [2 * MaxExtraImpulses]float64
	OverlappedAverageAcceleration float64

	StepRate stepclock.Rate
}

// Enabled reports whether this configuration produces any shaping at all
// (the planner's "disabled or type none" dispatch branch).
func (p *Params) Enabled() bool {
	return p.Type != TypeNone
}

// Synthesize computes a Params for the given configuration. amplitudes and
// durations are only consulted when t == TypeCustom; durations may be nil,
// meaning "use the default 0.5/frequency per impulse".
func Synthesize(t Type, frequency, damping, minAcceleration float64, amplitudes, durations []float64, stepRate stepclock.Rate) (*Params, error) {
	if !t.Valid() {
		return nil, shapererr.UnknownTypeError(string(t))
	}

	p := &Params{
		Type:            t,
		Frequency:       frequency,
		Damping:         damping,
		MinAcceleration: minAcceleration,
		StepRate:        stepRate,
	}

	sqrtOneMinusZetaSquared := math.Sqrt(1.0 - damping*damping)
	dampedFrequency := frequency * sqrtOneMinusZetaSquared
	k := math.Exp(-damping * math.Pi / sqrtOneMinusZetaSquared)

	switch t {
	case TypeNone:
		p.NumExtraImpulses = 0

	case TypeCustom:
		if len(durations) != 0 && len(durations) != len(amplitudes) {
			return nil, shapererr.ArityMismatchError()
		}
		n := len(amplitudes)
		if n > MaxExtraImpulses {
			n = MaxExtraImpulses
		}
		copy(p.Coefficients[:], amplitudes[:n])
		if len(durations) == len(amplitudes) {
			copy(p.Durations[:], durations[:n])
		} else {
			for i := 0; i < n; i++ {
				p.Durations[i] = 0.5 / frequency
			}
		}
		p.NumExtraImpulses = n

	case TypeDAA:
		// For DAA, Durations[0] holds the full ringing period 1/ωd, not an
		// impulse delay; there is no impulse train.
		p.Durations[0] = 1.0 / dampedFrequency
		p.NumExtraImpulses = 0

	case TypeZVD:
		j := 1.0 + 2.0*k + k*k
		p.Coefficients[0] = 1.0 / j
		p.Coefficients[1] = p.Coefficients[0] + 2.0*k/j
		p.Durations[0] = 0.5 / dampedFrequency
		p.Durations[1] = p.Durations[0]
		p.NumExtraImpulses = 2

	case TypeZVDD:
		j := 1.0 + 3.0*(k+k*k) + k*k*k
		p.Coefficients[0] = 1.0 / j
		p.Coefficients[1] = p.Coefficients[0] + 3.0*k/j
		p.Coefficients[2] = p.Coefficients[1] + 3.0*k*k/j
		d := 0.5 / dampedFrequency
		p.Durations[0], p.Durations[1], p.Durations[2] = d, d, d
		p.NumExtraImpulses = 3

	case TypeEI2:
		zeta := damping
		zeta2 := zeta * zeta
		zeta3 := zeta2 * zeta
		p.Coefficients[0] = 0.16054 + 0.76699*zeta + 2.26560*zeta2 + -1.22750*zeta3
		p.Coefficients[1] = (0.16054+0.33911) + (0.76699+0.45081)*zeta + (2.26560-2.58080)*zeta2 + (-1.22750+1.73650)*zeta3
		p.Coefficients[2] = (0.16054+0.33911+0.34089) + (0.76699+0.45081-0.61533)*zeta + (2.26560-2.58080-0.68765)*zeta2 + (-1.22750+1.73650+0.42261)*zeta3
		p.Durations[0] = (0.49890 + 0.16270*zeta + -0.54262*zeta2 + 6.16180*zeta3) / dampedFrequency
		p.Durations[1] = ((0.99748 - 0.49890) + (0.18382-0.16270)*zeta + (-1.58270+0.54262)*zeta2 + (8.17120-6.16180)*zeta3) / dampedFrequency
		p.Durations[2] = ((1.49920 - 0.99748) + (-0.09297-0.18382)*zeta + (-0.28338+1.58270)*zeta2 + (1.85710-8.17120)*zeta3) / dampedFrequency
		p.NumExtraImpulses = 3

	case TypeEI3:
		zeta := damping
		zeta2 := zeta * zeta
		zeta3 := zeta2 * zeta
		p.Coefficients[0] = 0.11275 + 0.76632*zeta + 3.29160*zeta2 + -1.44380*zeta3
		p.Coefficients[1] = (0.11275+0.23698) + (0.76632+0.61164)*zeta + (3.29160-2.57850)*zeta2 + (-1.44380+4.85220)*zeta3
		p.Coefficients[2] = (0.11275+0.23698+0.30008) + (0.76632+0.61164-0.19062)*zeta + (3.29160-2.57850-2.14560)*zeta2 + (-1.44380+4.85220+0.13744)*zeta3
		p.Coefficients[3] = (0.11275+0.23698+0.30008+0.23775) + (0.76632+0.61164-0.19062-0.73297)*zeta + (3.29160-2.57850-2.14560+0.46885)*zeta2 + (-1.44380+4.85220+0.13744-2.08650)*zeta3
		p.Durations[0] = (0.49974 + 0.23834*zeta + 0.44559*zeta2 + 12.4720*zeta3) / dampedFrequency
		p.Durations[1] = ((0.99849 - 0.49974) + (0.29808-0.23834)*zeta + (-2.36460-0.44559)*zeta2 + (23.3990-12.4720)*zeta3) / dampedFrequency
		p.Durations[2] = ((1.49870 - 0.99849) + (0.10306-0.29808)*zeta + (-2.01390+2.36460)*zeta2 + (17.0320-23.3990)*zeta3) / dampedFrequency
		p.Durations[3] = ((1.99960 - 1.49870) + (-0.28231-0.10306)*zeta + (0.61536+2.01390)*zeta2 + (5.40450-17.0320)*zeta3) / dampedFrequency
		p.NumExtraImpulses = 4
	}

	p.finishSynthesis()
	return p, nil
}

// finishSynthesis computes the derived fields common to every shaper type:
// lost-time partition, total shaping duration, and the overlapped table.
//
// The loop bound below is `n-1`, not `n`. This is deliberate, preserved
// behaviour from the original source rather than an off-by-one to fix: the
// last impulse's duration never contributes to TotalDuration or the
// lost-time split.
func (p *Params) finishSynthesis() {
	n := p.NumExtraImpulses
	var totalDuration, lostAtStart, lostAtEnd float64
	for i := 0; i < n-1; i++ {
		totalDuration += p.Durations[i]
		lostAtStart += (1.0 - p.Coefficients[i]) * p.Durations[i]
		lostAtEnd += p.Coefficients[i] * p.Durations[i]
	}
	p.TotalDuration = totalDuration
	p.ClocksLostAtStart = p.StepRate.Clocks(lostAtStart)
	p.ClocksLostAtEnd = p.StepRate.Clocks(lostAtEnd)
	p.TotalShapingClocks = p.StepRate.Clocks(totalDuration)

	if n == 0 {
		return
	}

	vals := make([]float64, 2*n)
	maxVal := math.Inf(-1)
	for i := 0; i < 2*n; i++ {
		var v float64
		if i < n {
			v = p.Coefficients[i]
		} else {
			v = 1.0
		}
		if i >= n {
			v -= p.Coefficients[i-n]
		}
		vals[i] = v
		if v > maxVal {
			maxVal = v
		}
	}

	scaling := 1.0
	if maxVal != 0 {
		scaling = 1.0 / maxVal
	}
	var totalAcceleration float64
	for i, v := range vals {
		v *= scaling
		p.Overlapped[i] = v
		totalAcceleration += v
	}
	p.OverlappedAverageAcceleration = totalAcceleration/float64(n) + float64(n)
}
