package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
)

func ptr(v float64) *float64 { return &v }

func TestValidateRecordRequest(t *testing.T) {
	valid := RecordRequest{Date: "2024-01-01", Mood: ptr(8), SleepHours: ptr(7.5)}
	assert.NoError(t, ValidateRecordRequest(&valid))

	cases := []struct {
		name string
		body RecordRequest
	}{
		{"missing date", RecordRequest{Mood: ptr(8)}},
		{"malformed date", RecordRequest{Date: "01/02/2024"}},
		{"mood too high", RecordRequest{Date: "2024-01-01", Mood: ptr(11)}},
		{"mood below one", RecordRequest{Date: "2024-01-01", Mood: ptr(0)}},
		{"sleep above 24", RecordRequest{Date: "2024-01-01", SleepHours: ptr(25)}},
		{"negative exercise", RecordRequest{Date: "2024-01-01", ExerciseMinutes: ptr(-5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateRecordRequest(&tc.body))
		})
	}
}

func TestSaveRecordUpsertsByDate(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewFileRecordStore(filepath.Join(t.TempDir(), "records.json"), internal.NopLogger{})
	require.NoError(t, err)
	defer repo.Close()
	user := &internal.User{ID: "u1"}

	first, err := SaveRecord(ctx, repo, user, &RecordRequest{Date: "2024-01-01", Mood: ptr(5)})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = SaveRecord(ctx, repo, user, &RecordRequest{Date: "2024-01-01", Mood: ptr(9)})
	require.NoError(t, err)

	records, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 9.0, *records[0].Mood)
}

func TestHealthScoreBands(t *testing.T) {
	perfect := &internal.HealthRecord{
		SleepHours:      ptr(8),
		WaterIntake:     ptr(7),
		ExerciseMinutes: ptr(60),
		StressLevel:     ptr(2),
		Mood:            ptr(9),
	}
	assert.Equal(t, 100, HealthScore(perfect))

	rough := &internal.HealthRecord{
		SleepHours:      ptr(4),  // outside every band: 10
		WaterIntake:     ptr(1),  // below 2: 5
		ExerciseMinutes: ptr(0),  // under 15: 5
		StressLevel:     ptr(9),  // over 7: 0
		Mood:            ptr(2),  // under 4: 0
	}
	assert.Equal(t, 20, HealthScore(rough))

	middling := &internal.HealthRecord{
		SleepHours:      ptr(6),  // 20
		WaterIntake:     ptr(4),  // 15
		ExerciseMinutes: ptr(30), // 20
		StressLevel:     ptr(5),  // 10
		Mood:            ptr(6),  // 10
	}
	assert.Equal(t, 75, HealthScore(middling))

	// Fields never recorded contribute nothing.
	assert.Equal(t, 0, HealthScore(&internal.HealthRecord{}))
	assert.Equal(t, 25, HealthScore(&internal.HealthRecord{SleepHours: ptr(8)}))
}

func TestCalculateStatsSevenDayWindow(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	lastMonth := time.Now().AddDate(0, -1, 0).Format("2006-01-02")

	records := []internal.HealthRecord{
		{Date: today, Mood: ptr(8), Energy: ptr(6), SleepHours: ptr(8), StressLevel: ptr(3), ExerciseMinutes: ptr(30), WaterIntake: ptr(7)},
		{Date: yesterday, Mood: ptr(6), Energy: ptr(4), SleepHours: ptr(6), StressLevel: ptr(5), ExerciseMinutes: ptr(45)},
		{Date: lastMonth, Mood: ptr(1), Energy: ptr(1), SleepHours: ptr(1), ExerciseMinutes: ptr(500)},
	}

	stats := CalculateStats(records)
	assert.Equal(t, 2, stats.Days)
	assert.Equal(t, 7.0, stats.AvgMood)
	assert.Equal(t, 5.0, stats.AvgEnergy)
	assert.Equal(t, 7.0, stats.AvgSleepHours)
	assert.Equal(t, 4.0, stats.AvgStressLevel)
	assert.Equal(t, 75.0, stats.TotalExercise)
	assert.Equal(t, []float64{8, 6}, stats.MoodTrend)
	// Score comes from the newest record, which lists first.
	assert.Equal(t, HealthScore(&records[0]), stats.HealthScore)
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)
	assert.Equal(t, 0, stats.Days)
	assert.Equal(t, 0.0, stats.AvgMood)
	assert.Equal(t, 0, stats.HealthScore)
}

func TestCalculateStatsSkipsMissingFields(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	records := []internal.HealthRecord{
		{Date: today, Mood: ptr(8)},
		{Date: today, SleepHours: ptr(7)},
	}
	stats := CalculateStats(records)
	// Averages only cover records that carry the field.
	assert.Equal(t, 8.0, stats.AvgMood)
	assert.Equal(t, 7.0, stats.AvgSleepHours)
}
