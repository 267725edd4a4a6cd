package shapercmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"axisshaper/pkg/shaper"
	"axisshaper/pkg/stepclock"
)

func TestParseEmptyLineIsPureQuery(t *testing.T) {
	req, err := Parse("   ")
	require.NoError(t, err)
	require.False(t, req.Seen)
}

func TestParseFrequencyDampingType(t *testing.T) {
	req, err := Parse("Pzvd F40 S0.1")
	require.NoError(t, err)
	require.True(t, req.Seen)
	require.Equal(t, "zvd", req.TypeName)
	require.NotNil(t, req.Frequency)
	require.InDelta(t, 40.0, *req.Frequency, 1e-9)
	require.NotNil(t, req.Damping)
	require.InDelta(t, 0.1, *req.Damping, 1e-9)
}

func TestParseCustomArrays(t *testing.T) {
	req, err := Parse("Pcustom H{0.3:0.7} T{0.01:0.02}")
	require.NoError(t, err)
	require.Equal(t, "custom", req.TypeName)
	require.Equal(t, []float64{0.3, 0.7}, req.Amplitudes)
	require.Equal(t, []float64{0.01, 0.02}, req.Durations)
}

func TestParseBadFloatIsAnError(t *testing.T) {
	_, err := Parse("Fbogus")
	require.Error(t, err)
}

func TestParseUnknownLetterIgnored(t *testing.T) {
	req, err := Parse("X1 Y2 F40")
	require.NoError(t, err)
	require.True(t, req.Seen)
	require.NotNil(t, req.Frequency)
}

// TestConfigureEndToEndThroughParse exercises the documented letter syntax
// all the way through to a Configurator, table-driven per shaper type.
func TestConfigureEndToEndThroughParse(t *testing.T) {
	cases := []struct {
		name     string
		cmd      string
		wantType shaper.Type
	}{
		{"zvd", "Pzvd F40 S0.1", shaper.TypeZVD},
		{"zvdd", "Pzvdd F40 S0.1", shaper.TypeZVDD},
		{"ei2", "Pei2 F50 S0", shaper.TypeEI2},
		{"ei3", "Pei3 F50 S0.1", shaper.TypeEI3},
		{"daa", "Pdaa F40", shaper.TypeDAA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := shaper.NewConfigurator(stepclock.DefaultRate, true)
			req, err := Parse(tc.cmd)
			require.NoError(t, err)
			_, err = c.Configure(req)
			require.NoError(t, err)
			require.Equal(t, tc.wantType, c.Current().Type)
		})
	}
}

func TestReportTextMatchesDocumentedFormat(t *testing.T) {
	c := shaper.NewConfigurator(stepclock.DefaultRate, true)
	req, err := Parse("Pzvd F40 S0.1")
	require.NoError(t, err)
	_, err = c.Configure(req)
	require.NoError(t, err)

	report := shaper.Report(c.Current())
	require.Contains(t, report, "Input shaping 'zvd'")
	require.Contains(t, report, "damping factor 0.10")
	require.Contains(t, report, "impulses")
	require.Contains(t, report, "with durations (ms)")
}

func TestDisabledReport(t *testing.T) {
	c := shaper.NewConfigurator(stepclock.DefaultRate, true)
	report, err := c.Configure(shaper.Request{Seen: false})
	require.NoError(t, err)
	require.Equal(t, "Input shaping is disabled", report)
}
