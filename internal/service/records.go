package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
)

var validate = validator.New()

// RecordRequest is a manual daily entry. Ranges match the import pipeline's
// per-field validation.
type RecordRequest struct {
	Date            string   `json:"date" validate:"required,datetime=2006-01-02"`
	Mood            *float64 `json:"mood" validate:"omitempty,gte=1,lte=10"`
	Energy          *float64 `json:"energy" validate:"omitempty,gte=1,lte=10"`
	SleepHours      *float64 `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	ExerciseMinutes *float64 `json:"exercise_minutes" validate:"omitempty,gte=0"`
	StressLevel     *float64 `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
	WaterIntake     *float64 `json:"water_intake" validate:"omitempty,gte=0"`
}

func ValidateRecordRequest(body *RecordRequest) error {
	return validate.Struct(body)
}

// SaveRecord upserts a manual entry; re-entering a date replaces that day's
// record.
func SaveRecord(ctx context.Context, repo storage.RecordRepository, user *internal.User, body *RecordRequest) (*internal.HealthRecord, error) {
	record := &internal.HealthRecord{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Date:            body.Date,
		Mood:            body.Mood,
		Energy:          body.Energy,
		SleepHours:      body.SleepHours,
		ExerciseMinutes: body.ExerciseMinutes,
		StressLevel:     body.StressLevel,
		WaterIntake:     body.WaterIntake,
		CreatedAt:       time.Now(),
	}
	if err := repo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Stats summarizes the trailing seven days of records.
type Stats struct {
	Days           int       `json:"days"`
	AvgMood        float64   `json:"avg_mood"`
	AvgEnergy      float64   `json:"avg_energy"`
	AvgSleepHours  float64   `json:"avg_sleep_hours"`
	AvgStressLevel float64   `json:"avg_stress_level"`
	TotalExercise  float64   `json:"total_exercise_minutes"`
	HealthScore    int       `json:"health_score"`
	MoodTrend      []float64 `json:"mood_trend"`
}

// CalculateStats averages the user's last seven days of data and computes a
// composite score from the most recent record.
func CalculateStats(records []internal.HealthRecord) Stats {
	cutoff := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	var stats Stats
	var moodSum, moodN, energySum, energyN, sleepSum, sleepN, stressSum, stressN float64
	for _, r := range records {
		if r.Date < cutoff {
			continue
		}
		stats.Days++
		if r.Mood != nil {
			moodSum += *r.Mood
			moodN++
			stats.MoodTrend = append(stats.MoodTrend, *r.Mood)
		}
		if r.Energy != nil {
			energySum += *r.Energy
			energyN++
		}
		if r.SleepHours != nil {
			sleepSum += *r.SleepHours
			sleepN++
		}
		if r.StressLevel != nil {
			stressSum += *r.StressLevel
			stressN++
		}
		if r.ExerciseMinutes != nil {
			stats.TotalExercise += *r.ExerciseMinutes
		}
	}
	if moodN > 0 {
		stats.AvgMood = moodSum / moodN
	}
	if energyN > 0 {
		stats.AvgEnergy = energySum / energyN
	}
	if sleepN > 0 {
		stats.AvgSleepHours = sleepSum / sleepN
	}
	if stressN > 0 {
		stats.AvgStressLevel = stressSum / stressN
	}
	if len(records) > 0 {
		stats.HealthScore = HealthScore(&records[0])
	}
	return stats
}

// HealthScore rates one day 0-100. Banded, not linear: sleep 25, water 20,
// exercise 25, stress 15, mood 15.
func HealthScore(r *internal.HealthRecord) int {
	score := 0

	if v := r.SleepHours; v != nil {
		switch {
		case *v >= 7 && *v <= 9:
			score += 25
		case *v >= 6 && *v <= 10:
			score += 20
		case *v >= 5 && *v <= 11:
			score += 15
		default:
			score += 10
		}
	}

	if v := r.WaterIntake; v != nil {
		switch {
		case *v >= 6 && *v <= 8:
			score += 20
		case *v >= 4 && *v <= 10:
			score += 15
		case *v >= 2:
			score += 10
		default:
			score += 5
		}
	}

	if v := r.ExerciseMinutes; v != nil {
		switch {
		case *v >= 60:
			score += 25
		case *v >= 30:
			score += 20
		case *v >= 15:
			score += 10
		default:
			score += 5
		}
	}

	if v := r.StressLevel; v != nil {
		switch {
		case *v <= 3:
			score += 15
		case *v <= 5:
			score += 10
		case *v <= 7:
			score += 5
		}
	}

	if v := r.Mood; v != nil {
		switch {
		case *v >= 8:
			score += 15
		case *v >= 6:
			score += 10
		case *v >= 4:
			score += 5
		}
	}

	return score
}
