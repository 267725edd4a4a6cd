package shaper

import (
	"testing"

	"axisshaper/pkg/shaper/shapererr"
	"axisshaper/pkg/stepclock"
)

func f(v float64) *float64 { return &v }

func TestConfigureQueryWhenDisabled(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	report, err := c.Configure(Request{Seen: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "Input shaping is disabled" {
		t.Fatalf("report = %q", report)
	}
}

func TestConfigureSetsTypeAndNotifies(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	notified := 0
	c.OnUpdated = func() { notified++ }

	report, err := c.Configure(Request{Seen: true, TypeName: "zvd", Frequency: f(40), Damping: f(0.1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "" {
		t.Fatalf("expected empty report on a change, got %q", report)
	}
	if notified != 1 {
		t.Fatalf("expected OnUpdated to fire once, got %d", notified)
	}
	if c.Current().Type != TypeZVD {
		t.Fatalf("type not applied: %v", c.Current().Type)
	}

	queryReport, err := c.Configure(Request{Seen: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queryReport == "Input shaping is disabled" {
		t.Fatalf("query report should reflect the configured shaper")
	}
}

func TestConfigureDefaultsTypeWhenDAACapable(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	if _, err := c.Configure(Request{Seen: true, Frequency: f(40)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Current().Type != TypeDAA {
		t.Fatalf("expected DAA default, got %v", c.Current().Type)
	}
}

func TestConfigureDefaultsTypeWhenNotDAACapable(t *testing.T) {
	c := NewConfigurator(testStepRate, false)
	if _, err := c.Configure(Request{Seen: true, Frequency: f(40)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Current().Type != TypeZVD {
		t.Fatalf("expected zvd default, got %v", c.Current().Type)
	}
}

func TestConfigureUnknownTypeLeavesCurrentParamsUnchanged(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	if _, err := c.Configure(Request{Seen: true, TypeName: "zvd", Frequency: f(40)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := c.Configure(Request{Seen: true, TypeName: "bogus"})
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*shapererr.ConfigError)
	if !ok || ce.Kind != shapererr.UnknownType {
		t.Fatalf("expected UnknownType ConfigError, got %v", err)
	}
	if c.Current().Type != TypeZVD {
		t.Fatalf("params should be untouched after a rejected change, got %v", c.Current().Type)
	}
}

func TestConfigureFrequencyOutOfRange(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	_, err := c.Configure(Request{Seen: true, Frequency: f(2000)})
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*shapererr.ConfigError)
	if !ok || ce.Kind != shapererr.OutOfRange || ce.Param != 'F' {
		t.Fatalf("expected OutOfRange(F) ConfigError, got %v", err)
	}
}

func TestConfigureDampingOutOfRange(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	_, err := c.Configure(Request{Seen: true, Damping: f(1.0)})
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*shapererr.ConfigError)
	if !ok || ce.Kind != shapererr.OutOfRange || ce.Param != 'S' {
		t.Fatalf("expected OutOfRange(S) ConfigError, got %v", err)
	}
}

func TestConfigureMinAccelerationClampedNotRejected(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	_, err := c.Configure(Request{Seen: true, MinAcceleration: f(0.2), TypeName: "zvd"})
	if err != nil {
		t.Fatalf("L must be clamped, never rejected: %v", err)
	}
	if c.Current().MinAcceleration != 1.0 {
		t.Fatalf("expected MinAcceleration clamped to 1.0, got %v", c.Current().MinAcceleration)
	}
}

func TestConfigureArityMismatchRevertsToNone(t *testing.T) {
	c := NewConfigurator(testStepRate, true)
	_, err := c.Configure(Request{
		Seen:       true,
		TypeName:   "custom",
		Amplitudes: []float64{0.2, 0.5},
		Durations:  []float64{0.01},
	})
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	// The rejected custom shaper must leave the active params at type none.
	if c.Current().Type != TypeNone {
		t.Fatalf("expected params reverted to none, got %v", c.Current().Type)
	}
}

func TestNewConfiguratorStartsDisabled(t *testing.T) {
	c := NewConfigurator(stepclock.DefaultRate, true)
	if c.Current().Type != TypeNone {
		t.Fatalf("expected shaping disabled initially, got %v", c.Current().Type)
	}
}
