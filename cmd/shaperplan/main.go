// shaperplan is a small demo driver for the axis shaper: it reads a file of
// configuration commands and move descriptions, applies them in order, and
// prints the resulting shaper report and segment chain for each move.
//
// Usage:
//
//	shaperplan -input moves.txt [options]
//
// Options:
//
//	-input string     Move/configuration script (required)
//	-steprate float   Step-timer tick rate (default 750000)
//	-daa              Build with DAA as the default capable type
//	-trace            Enable debug tracing
//
// Script format, one directive per line:
//
//	# comment
//	CONFIG Pzvd F40 S0.1
//	MOVE start=0 top=50 end=0 accel=1000 decel=1000 total=200
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"axisshaper/pkg/log"
	"axisshaper/pkg/motion"
	"axisshaper/pkg/shaper"
	"axisshaper/pkg/shapercmd"
	"axisshaper/pkg/stepclock"
)

func main() {
	inputFile := flag.String("input", "", "Move/configuration script (required)")
	stepRateFlag := flag.Float64("steprate", float64(stepclock.DefaultRate), "Step-timer tick rate")
	daaCapable := flag.Bool("daa", true, "Default to DAA (rather than zvd) when a type is never set")
	trace := flag.Bool("trace", false, "Enable debug tracing")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	logger := log.New("shaperplan")
	if *trace {
		logger.SetLevel(log.DEBUG)
	} else {
		logger.SetLevel(log.WARN)
	}

	stepRate := stepclock.Rate(*stepRateFlag)
	configurator := shaper.NewConfigurator(stepRate, *daaCapable)
	configurator.Logger = logger
	planner := motion.NewPlanner()
	planner.Logger = logger

	f, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "CONFIG "):
			if err := runConfig(configurator, strings.TrimPrefix(line, "CONFIG ")); err != nil {
				fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNo, err)
			}
		case strings.HasPrefix(line, "MOVE "):
			if err := runMove(configurator, planner, strings.TrimPrefix(line, "MOVE ")); err != nil {
				fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNo, err)
			}
		default:
			fmt.Fprintf(os.Stderr, "line %d: unrecognised directive %q\n", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runConfig(c *shaper.Configurator, rest string) error {
	req, err := shapercmd.Parse(rest)
	if err != nil {
		return err
	}
	report, err := c.Configure(req)
	if err != nil {
		fmt.Printf("config error: %v\n", err)
		return nil
	}
	if report != "" {
		fmt.Println(report)
	}
	return nil
}

func runMove(c *shaper.Configurator, p *motion.Planner, rest string) error {
	fields := map[string]float64{}
	for _, tok := range strings.Fields(rest) {
		parts := strings.SplitN(tok, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("bad field %q", tok)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("bad value in %q: %w", tok, err)
		}
		fields[parts[0]] = v
	}

	m := &motion.Move{
		StartSpeed:    fields["start"],
		TopSpeed:      fields["top"],
		EndSpeed:      fields["end"],
		Acceleration:  fields["accel"],
		Deceleration:  fields["decel"],
		TotalDistance: fields["total"],
	}
	m.AccelDistance = (m.TopSpeed*m.TopSpeed - m.StartSpeed*m.StartSpeed) / (2 * m.Acceleration)
	m.DecelDistance = (m.TopSpeed*m.TopSpeed - m.EndSpeed*m.EndSpeed) / (2 * m.Deceleration)
	m.DeriveClocks(float64(c.Current().StepRate))

	plan := p.Plan(m, c.Current(), true)
	fmt.Printf("plan: accelStart=%v accelEnd=%v decelStart=%v decelEnd=%v segs=%d/%d\n",
		plan.ShapeAccelStart, plan.ShapeAccelEnd, plan.ShapeDecelStart, plan.ShapeDecelEnd,
		plan.AccelSegments, plan.DecelSegments)

	for seg := m.Chain; seg != nil; seg = seg.Next() {
		fmt.Println("  " + seg.String())
	}
	motion.ReleaseChain(m.Chain)
	return nil
}
