package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// FieldKey identifies one column of the fixed health-metrics schema.
type FieldKey string

const (
	FieldDate            FieldKey = "date"
	FieldMood            FieldKey = "mood"
	FieldEnergy          FieldKey = "energy"
	FieldSleepHours      FieldKey = "sleep_hours"
	FieldExerciseMinutes FieldKey = "exercise_minutes"
	FieldStressLevel     FieldKey = "stress_level"
	FieldWaterIntake     FieldKey = "water_intake"
)

// FieldKeys lists every schema field in canonical column order. The order is
// load-bearing: CSV export emits columns in exactly this sequence.
var FieldKeys = []FieldKey{
	FieldDate,
	FieldMood,
	FieldEnergy,
	FieldSleepHours,
	FieldExerciseMinutes,
	FieldStressLevel,
	FieldWaterIntake,
}

// HealthRecord is one user's metrics for one calendar day. Date is always a
// canonical YYYY-MM-DD string; (UserID, Date) is the natural key. Numeric
// fields are nil when the source row left them blank.
type HealthRecord struct {
	ID              string    `json:"id,omitempty"`
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"`
	Mood            *float64  `json:"mood,omitempty"`
	Energy          *float64  `json:"energy,omitempty"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	ExerciseMinutes *float64  `json:"exercise_minutes,omitempty"`
	StressLevel     *float64  `json:"stress_level,omitempty"`
	WaterIntake     *float64  `json:"water_intake,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// Value returns the record's value for a numeric field key, nil for unset
// fields and for FieldDate.
func (r *HealthRecord) Value(key FieldKey) *float64 {
	switch key {
	case FieldMood:
		return r.Mood
	case FieldEnergy:
		return r.Energy
	case FieldSleepHours:
		return r.SleepHours
	case FieldExerciseMinutes:
		return r.ExerciseMinutes
	case FieldStressLevel:
		return r.StressLevel
	case FieldWaterIntake:
		return r.WaterIntake
	}
	return nil
}

// SetValue assigns a numeric field by key. FieldDate is not settable here.
func (r *HealthRecord) SetValue(key FieldKey, v *float64) {
	switch key {
	case FieldMood:
		r.Mood = v
	case FieldEnergy:
		r.Energy = v
	case FieldSleepHours:
		r.SleepHours = v
	case FieldExerciseMinutes:
		r.ExerciseMinutes = v
	case FieldStressLevel:
		r.StressLevel = v
	case FieldWaterIntake:
		r.WaterIntake = v
	}
}

// ColumnMapping associates schema field keys with header strings from the
// uploaded file. A missing key means the field is unmapped.
type ColumnMapping map[FieldKey]string

// MissingFields returns the schema fields that have no mapped header, in
// canonical order.
func (m ColumnMapping) MissingFields() []FieldKey {
	var missing []FieldKey
	for _, key := range FieldKeys {
		if m[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// SavedMapping is a named, persisted ColumnMapping together with the header
// list it was trained on. Entries are never mutated; re-saving a name
// supersedes the previous entry.
type SavedMapping struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Mapping   ColumnMapping `json:"mapping"`
	Headers   []string      `json:"headers"`
	CreatedAt time.Time     `json:"created_at"`
}
