// Package shapererr defines the typed configuration errors that
// shaper.Configurator.Configure returns: unknown shaper type, mismatched
// custom-shaper array lengths, and out-of-range numeric parameters.
package shapererr

import "fmt"

// Kind categorises a configuration error.
type Kind int

const (
	// UnknownType means the 'P' letter named a shaper type we don't know.
	UnknownType Kind = iota
	// ArityMismatch means a custom shaper's H and T arrays disagreed in length.
	ArityMismatch
	// OutOfRange means a numeric parameter (F or S) fell outside its
	// documented range and was rejected rather than clamped.
	OutOfRange
)

// String names the error kind.
func (k Kind) String() string {
	switch k {
	case UnknownType:
		return "UnknownType"
	case ArityMismatch:
		return "ArityMismatch"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// ConfigError is returned by shaper.Configurator.Configure for any of the
// three error kinds above. L is never the subject of a ConfigError:
// out-of-range L values are clamped silently, never rejected.
type ConfigError struct {
	Kind Kind
	// Param is the command letter the error concerns ('F', 'S', 'P', 'H',
	// or 'T'), or 0 if the error isn't tied to a single letter.
	Param byte
	// Message is the human-readable text, matching the original source's
	// reply strings where one exists (UnknownType, ArityMismatch).
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Param == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s(%c): %s", e.Kind, e.Param, e.Message)
}

// UnknownTypeError matches AxisShaper::Configure's
// `Unsupported input shaper type '%s'` reply.
func UnknownTypeError(name string) *ConfigError {
	return &ConfigError{
		Kind:    UnknownType,
		Param:   'P',
		Message: fmt.Sprintf("Unsupported input shaper type '%s'", name),
	}
}

// ArityMismatchError matches AxisShaper::Configure's
// `Too few durations given` reply.
func ArityMismatchError() *ConfigError {
	return &ConfigError{
		Kind:    ArityMismatch,
		Param:   'T',
		Message: "Too few durations given",
	}
}

// OutOfRangeError reports that param's value was rejected rather than
// clamped.
func OutOfRangeError(param byte, value, min, max float64) *ConfigError {
	return &ConfigError{
		Kind:    OutOfRange,
		Param:   param,
		Message: fmt.Sprintf("value %g out of range [%g, %g]", value, min, max),
	}
}
