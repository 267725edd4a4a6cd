// Package shapercmd tokenizes the free-form input-shaper configuration
// command (modelled on RepRapFirmware's M593) into a shaper.Request.
//
// Grammar: whitespace-separated tokens, each either <LETTER><value> (F40,
// S0.1) or, for the array parameters H and T, <LETTER>{v0:v1:v2} (colon
// separated, brace delimited). Tokenizing style grounded on the gcode line
// tokenizer this codebase already uses elsewhere.
package shapercmd

import (
	"fmt"
	"strconv"
	"strings"

	"axisshaper/pkg/shaper"
)

// Parse tokenizes line into a shaper.Request. An empty or whitespace-only
// line yields a zero Request with Seen == false (a pure query). Unrecognised
// letters are ignored: the tokenizer collects everything and lets the
// caller decide what to do with it.
func Parse(line string) (shaper.Request, error) {
	var req shaper.Request

	fields := strings.Fields(line)
	for _, tok := range fields {
		if tok == "" {
			continue
		}
		letter := tok[0]
		value := tok[1:]

		switch letter {
		case 'F', 'f':
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("shapercmd: bad F value %q: %w", value, err)
			}
			req.Seen = true
			req.Frequency = &f
		case 'L', 'l':
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("shapercmd: bad L value %q: %w", value, err)
			}
			req.Seen = true
			req.MinAcceleration = &f
		case 'S', 's':
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("shapercmd: bad S value %q: %w", value, err)
			}
			req.Seen = true
			req.Damping = &f
		case 'P', 'p':
			req.Seen = true
			req.TypeName = strings.ToLower(strings.TrimSpace(value))
		case 'H', 'h':
			arr, err := parseArray(value)
			if err != nil {
				return req, fmt.Errorf("shapercmd: bad H value %q: %w", value, err)
			}
			req.Seen = true
			req.Amplitudes = arr
		case 'T', 't':
			arr, err := parseArray(value)
			if err != nil {
				return req, fmt.Errorf("shapercmd: bad T value %q: %w", value, err)
			}
			req.Seen = true
			req.Durations = arr
		}
	}
	return req, nil
}

// parseArray parses a brace-delimited, colon-separated float list such as
// "{0.3:0.7}". A bare value with no braces is treated as a single-element
// array, for convenience on single-impulse custom shapers.
func parseArray(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return nil, fmt.Errorf("empty array")
	}
	parts := strings.Split(s, ":")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
