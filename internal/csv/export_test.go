package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kadhiravan2002/AuraX/internal"
)

func identityMapping() internal.ColumnMapping {
	m := internal.ColumnMapping{}
	for _, key := range internal.FieldKeys {
		m[key] = string(key)
	}
	return m
}

func TestExportRoundTrip(t *testing.T) {
	text := "date,mood,energy,sleep_hours,exercise_minutes,stress_level,water_intake\n" +
		"2024-01-01,8,7,7.5,30,3,6\n" +
		"2024-01-02,6,5,8,0,2,4.25\n"

	table, err := Parse(text)
	require.NoError(t, err)
	batch, err := Transform(table, identityMapping())
	require.NoError(t, err)

	exported := Export(batch)
	assert.Equal(t, text, exported)

	// And the exported text parses back to the same cells.
	again, err := Parse(exported)
	require.NoError(t, err)
	assert.Equal(t, table.Headers, again.Headers)
	assert.Equal(t, table.Rows, again.Rows)
}

func TestExportBlankOptionalFields(t *testing.T) {
	table, err := Parse("date,mood,energy,sleep_hours,exercise_minutes,stress_level,water_intake\n" +
		"2024-01-01,8,,,,,\n")
	require.NoError(t, err)
	batch, err := Transform(table, identityMapping())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(Export(batch), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-01-01,8,,,,,", lines[1])
}

func TestExportNoLocaleReformatting(t *testing.T) {
	// A comma-decimal input is normalized once on the way in and must come
	// back out with a dot, never a locale comma.
	table, err := Parse("date,mood,energy,sleep_hours,exercise_minutes,stress_level,water_intake\n" +
		`2024-01-01,8,7,"7,5",30,3,6` + "\n")
	require.NoError(t, err)
	batch, err := Transform(table, identityMapping())
	require.NoError(t, err)

	assert.Contains(t, Export(batch), "7.5")
}
