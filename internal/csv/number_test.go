package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumberCommaDecimal(t *testing.T) {
	// "7,5" and "7.5" must yield the same value.
	withComma, err := NormalizeNumber("7,5", "sleep_hours")
	require.NoError(t, err)
	withDot, err := NormalizeNumber("7.5", "sleep_hours")
	require.NoError(t, err)
	assert.Equal(t, withDot, withComma)
	assert.Equal(t, 7.5, withComma)
}

func TestNormalizeNumberKeepsThousandsCommaOutWhenDotPresent(t *testing.T) {
	// A comma alongside a dot is a grouping separator, stripped not replaced.
	v, err := NormalizeNumber("1,234.5", "water_intake")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)
}

func TestNormalizeNumberStripsStraySymbols(t *testing.T) {
	cases := map[string]float64{
		" 8 ":      8,
		"7.5h":     7.5,
		"$12.30":   12.3,
		"45 min":   45,
		"-2.5 kg":  -2.5,
		"~6":       6,
	}
	for raw, want := range cases {
		v, err := NormalizeNumber(raw, "field")
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, v, "raw %q", raw)
	}
}

func TestNormalizeNumberErrors(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "-", "n/a"} {
		_, err := NormalizeNumber(raw, "mood")
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr, "raw %q", raw)
		assert.Equal(t, "mood", formatErr.Field)
		assert.Equal(t, raw, formatErr.Raw)
	}
}
