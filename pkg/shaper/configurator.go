package shaper

import (
	"sync"

	"axisshaper/pkg/log"
	"axisshaper/pkg/shaper/shapererr"
	"axisshaper/pkg/stepclock"
)

// Request carries the subset of the configuration command a caller wants
// to apply. A nil pointer/nil slice means "letter not present in the
// command"; Seen must be true if any recognised letter was present, matching
// the original source's `seen` flag, which also governs the "parameters
// seen but no type ever set" default-type rule.
type Request struct {
	Seen bool

	Frequency       *float64
	MinAcceleration *float64
	Damping         *float64

	// TypeName is the raw 'P' value, or "" if P was absent.
	TypeName string

	// Amplitudes and Durations are 'H' and 'T'; Durations may be nil even
	// when Amplitudes is set (defaults apply), but must match its length
	// if both are given.
	Amplitudes []float64
	Durations  []float64
}

// Configurator owns the process-wide, currently active Params and applies
// configuration commands to it. Params swaps are guarded by a RWMutex:
// Configure reads the active Params under the read lock, synthesises the
// replacement without holding the lock, and takes the write lock only for
// the swap; Current takes the read lock. A published Params is never
// mutated, so a planner holding one always sees a consistent table.
type Configurator struct {
	mu     sync.RWMutex
	params *Params

	stepRate   stepclock.Rate
	daaCapable bool

	// Logger, if set, receives DEBUG-level tracing; nil disables it.
	Logger *log.Logger

	// OnUpdated is the Go expression of reprap.MoveUpdated(): called once,
	// synchronously, after every successful Configure that changes Params.
	OnUpdated func()
}

// NewConfigurator creates a Configurator with shaping disabled (Type none)
// at the given step-timer rate. daaCapable controls the default type chosen
// when parameters are set without an explicit 'P'.
func NewConfigurator(stepRate stepclock.Rate, daaCapable bool) *Configurator {
	none, _ := Synthesize(TypeNone, DefaultFrequency, DefaultDamping, DefaultMinAcceleration, nil, nil, stepRate)
	return &Configurator{
		params:     none,
		stepRate:   stepRate,
		daaCapable: daaCapable,
	}
}

// Default configuration values, matching AxisShaper's field initialisers.
const (
	DefaultFrequency       = 40.0
	DefaultDamping         = 0.1
	DefaultMinAcceleration = 10.0
)

// Current returns the active Params. Safe to call concurrently with
// Configure; the returned pointer is never mutated in place.
func (c *Configurator) Current() *Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

// Configure applies req to the shaper configuration. On a pure query
// (req.Seen == false) it returns the report string for the current Params
// and a nil error, without side effects. On a change, it returns an empty
// report and either commits the new Params (calling OnUpdated) or returns a
// *shapererr.ConfigError. Errors leave the current Params untouched, except
// an ArityMismatch, which reverts the active Params to type none (without
// calling OnUpdated) — mirroring AxisShaper::Configure, which prints a
// report only when no parameter was seen.
func (c *Configurator) Configure(req Request) (report string, err error) {
	if !req.Seen {
		return c.reportLocked(), nil
	}

	c.mu.RLock()
	cur := c.params
	c.mu.RUnlock()

	frequency := cur.Frequency
	damping := cur.Damping
	minAcceleration := cur.MinAcceleration

	minFreq := c.stepRate.MinShapingFrequency()
	if req.Frequency != nil {
		if *req.Frequency < minFreq || *req.Frequency > 1000.0 {
			return "", shapererr.OutOfRangeError('F', *req.Frequency, minFreq, 1000.0)
		}
		frequency = *req.Frequency
	}
	if req.Damping != nil {
		if *req.Damping < 0.0 || *req.Damping > 0.99 {
			return "", shapererr.OutOfRangeError('S', *req.Damping, 0.0, 0.99)
		}
		damping = *req.Damping
	}
	if req.MinAcceleration != nil {
		minAcceleration = *req.MinAcceleration
		if minAcceleration < 1.0 {
			minAcceleration = 1.0
		}
	}

	newType := cur.Type
	if req.TypeName != "" {
		candidate := Type(req.TypeName)
		if !candidate.Valid() {
			return "", shapererr.UnknownTypeError(req.TypeName)
		}
		newType = candidate
	} else if cur.Type == TypeNone {
		if c.daaCapable {
			newType = TypeDAA
		} else {
			newType = TypeZVD
		}
	}

	params, err := Synthesize(newType, frequency, damping, minAcceleration, req.Amplitudes, req.Durations, c.stepRate)
	if err != nil {
		if ce, ok := err.(*shapererr.ConfigError); ok && ce.Kind == shapererr.ArityMismatch {
			// AxisShaper::Configure reverts to none on this specific
			// failure rather than leaving the previous type active.
			none, _ := Synthesize(TypeNone, frequency, damping, minAcceleration, nil, nil, c.stepRate)
			c.mu.Lock()
			c.params = none
			c.mu.Unlock()
		}
		return "", err
	}

	c.mu.Lock()
	c.params = params
	c.mu.Unlock()

	if c.OnUpdated != nil {
		c.OnUpdated()
	}
	if c.Logger != nil {
		c.Logger.Debugf("shaper configured: type=%s frequency=%.2f damping=%.3f", params.Type, params.Frequency, params.Damping)
	}
	return "", nil
}

func (c *Configurator) reportLocked() string {
	c.mu.RLock()
	p := c.params
	c.mu.RUnlock()
	return Report(p)
}
