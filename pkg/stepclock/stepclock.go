// Package stepclock holds the step-timer tick rate shared by the shaper and
// motion packages, and the handful of conversions built on top of it.
package stepclock

// Rate is the number of step-timer ticks per second. RepRapFirmware picks
// this per MCU at build time; we keep it as a value instead of a global so
// callers running multiple boards/simulations at once can use different
// rates without import-time state.
type Rate float64

// DefaultRate is a typical step-timer frequency for this class of board.
const DefaultRate Rate = 750000

// Squared returns rate^2, used by the (b, c) non-linear segment
// parameterisation in pkg/motion.
func (r Rate) Squared() float64 {
	return float64(r) * float64(r)
}

// Clocks converts a duration in seconds to a number of step-timer ticks.
func (r Rate) Clocks(seconds float64) float64 {
	return seconds * float64(r)
}

// Seconds converts a number of step-timer ticks to seconds.
func (r Rate) Seconds(clocks float64) float64 {
	return clocks / float64(r)
}

// MinShapingFrequency is the lowest input-shaping frequency representable
// with a 16-bit half-period count at the given tick rate:
// frequency ∈ [stepRate/(2·65535), 1000].
func (r Rate) MinShapingFrequency() float64 {
	return float64(r) / (2 * 65535)
}
