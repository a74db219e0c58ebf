package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kadhiravan2002/AuraX/internal"
)

func fullMapping() internal.ColumnMapping {
	return internal.ColumnMapping{
		internal.FieldDate:            "date",
		internal.FieldMood:            "mood",
		internal.FieldEnergy:          "energy",
		internal.FieldSleepHours:      "sleep",
		internal.FieldExerciseMinutes: "exercise",
		internal.FieldStressLevel:     "stress",
		internal.FieldWaterIntake:     "water",
	}
}

func fullTable(t *testing.T, rows string) *RawTable {
	t.Helper()
	table, err := Parse("date,mood,energy,sleep,exercise,stress,water\n" + rows)
	require.NoError(t, err)
	return table
}

func TestTransformRequiresEveryFieldMapped(t *testing.T) {
	table, err := Parse("date,mood,sleep\n2024-01-01,8,7.5\n")
	require.NoError(t, err)

	partial := internal.ColumnMapping{
		internal.FieldDate:       "date",
		internal.FieldMood:       "mood",
		internal.FieldSleepHours: "sleep",
	}
	_, err = Transform(table, partial)

	var incomplete *MappingIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []internal.FieldKey{
		internal.FieldEnergy,
		internal.FieldExerciseMinutes,
		internal.FieldStressLevel,
		internal.FieldWaterIntake,
	}, incomplete.Missing)
}

func TestTransformValidRows(t *testing.T) {
	table := fullTable(t, "2024-01-01,8,7,7.5,30,3,6\n2024-01-02,6,,8,,2,\n")
	batch, err := Transform(table, fullMapping())
	require.NoError(t, err)
	require.Len(t, batch.Entries, 2)
	assert.Empty(t, batch.Errors)

	first := batch.Entries[0]
	assert.Equal(t, "2024-01-01", first.Date)
	require.NotNil(t, first.Mood)
	assert.Equal(t, 8.0, *first.Mood)
	require.NotNil(t, first.SleepHours)
	assert.Equal(t, 7.5, *first.SleepHours)

	// Blank optional cells stay nil rather than zero.
	second := batch.Entries[1]
	assert.Nil(t, second.Energy)
	assert.Nil(t, second.ExerciseMinutes)
	assert.Nil(t, second.WaterIntake)
}

func TestTransformCanonicalizesDates(t *testing.T) {
	table := fullTable(t, "2024/03/05,8,7,7.5,30,3,6\n2024-3-5,6,5,8,20,2,5\n")
	batch, err := Transform(table, fullMapping())
	require.NoError(t, err)
	// Both spellings canonicalize to the same day, so dedup leaves one entry.
	require.Len(t, batch.Entries, 1)
	assert.Equal(t, "2024-03-05", batch.Entries[0].Date)
}

func TestTransformAccumulatesRowErrors(t *testing.T) {
	table := fullTable(t,
		"2024-01-01,8,7,7.5,30,3,6\n"+
			"not-a-date,8,7,7.5,30,3,6\n"+
			"2024-01-03,eleven,7,7.5,30,3,6\n"+
			"2024-01-04,8,7,99,30,3,6\n")
	batch, err := Transform(table, fullMapping())
	require.NoError(t, err)

	assert.Len(t, batch.Entries, 1)
	require.Len(t, batch.Errors, 3)
	assert.Contains(t, batch.Errors[0], "Row 2")
	assert.Contains(t, batch.Errors[0], "invalid date")
	assert.Contains(t, batch.Errors[1], "Row 3")
	assert.Contains(t, batch.Errors[1], "mood")
	assert.Contains(t, batch.Errors[2], "Row 4")
	assert.Contains(t, batch.Errors[2], "out of range")
}

func TestTransformRangeBounds(t *testing.T) {
	cases := []struct {
		row   string
		valid bool
	}{
		{"2024-01-01,1,10,0,0,1,0", true},    // every value at its boundary
		{"2024-01-01,10,1,24,600,10,99", true},
		{"2024-01-01,0,7,7.5,30,3,6", false},  // mood below 1
		{"2024-01-01,11,7,7.5,30,3,6", false}, // mood above 10
		{"2024-01-01,8,7,25,30,3,6", false},   // sleep above 24
		{"2024-01-01,8,7,7.5,-5,3,6", false},  // negative exercise
	}
	for _, tc := range cases {
		batch, err := Transform(fullTable(t, tc.row+"\n"), fullMapping())
		require.NoError(t, err, tc.row)
		if tc.valid {
			assert.Len(t, batch.Entries, 1, tc.row)
		} else {
			assert.Empty(t, batch.Entries, tc.row)
			assert.Len(t, batch.Errors, 1, tc.row)
		}
	}
}

func TestTransformLastOccurrenceWinsOnDuplicateDates(t *testing.T) {
	// Two rows for 2024-03-01 with different moods: the later row wins.
	table := fullTable(t,
		"2024-03-01,4,7,7.5,30,3,6\n"+
			"2024-02-28,5,5,8,0,2,4\n"+
			"2024-03-01,9,7,7.5,30,3,6\n")
	batch, err := Transform(table, fullMapping())
	require.NoError(t, err)

	require.Len(t, batch.Entries, 2)
	byDate := map[string]float64{}
	for _, e := range batch.Entries {
		byDate[e.Date] = *e.Mood
	}
	assert.Equal(t, 9.0, byDate["2024-03-01"])
	assert.Equal(t, 5.0, byDate["2024-02-28"])
}

func TestTransformNeverRaisesForBadRows(t *testing.T) {
	table := fullTable(t, "bad,x,x,x,x,x,x\nworse,y,y,y,y,y,y\n")
	batch, err := Transform(table, fullMapping())
	require.NoError(t, err)
	assert.Empty(t, batch.Entries)
	assert.Len(t, batch.Errors, 2)
}
