package shaper

import (
	"strings"

	"fmt"
)

// Report renders the textual status of p exactly as
// AxisShaper::Configure's query-branch reply.printf/reply.catf calls do:
// "Input shaping is disabled" for TypeNone, otherwise
// "Input shaping '<type>' at <F>Hz damping factor <ζ>, min. acceleration
// <L>, impulses c0 c1 ... with durations (ms) d0 d1 ...".
func Report(p *Params) string {
	if p.Type == TypeNone {
		return "Input shaping is disabled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Input shaping '%s' at %.1fHz damping factor %.2f, min. acceleration %.1f",
		p.Type, p.Frequency, p.Damping, p.MinAcceleration)

	if p.NumExtraImpulses != 0 {
		b.WriteString(", impulses")
		for i := 0; i < p.NumExtraImpulses; i++ {
			fmt.Fprintf(&b, " %.3f", p.Coefficients[i])
		}
		b.WriteString(" with durations (ms)")
		for i := 0; i < p.NumExtraImpulses; i++ {
			fmt.Fprintf(&b, " %.2f", p.Durations[i]*1000.0)
		}
	}
	return b.String()
}
