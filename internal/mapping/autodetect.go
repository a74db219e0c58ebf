package mapping

import (
	"strings"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// fieldAliases lists normalized header fragments that suggest each schema
// field, most specific first. Drawn from the header spellings seen in real
// exports (Apple Health, Fitbit, hand-kept spreadsheets).
var fieldAliases = map[internal.FieldKey][]string{
	internal.FieldDate:            {"date", "day", "recordedat", "loggedat"},
	internal.FieldMood:            {"mood", "feeling"},
	internal.FieldEnergy:          {"energy", "vitality"},
	internal.FieldSleepHours:      {"sleephours", "sleep", "hoursslept"},
	internal.FieldExerciseMinutes: {"exerciseminutes", "exercise", "workout", "activity"},
	internal.FieldStressLevel:     {"stresslevel", "stress"},
	internal.FieldWaterIntake:     {"waterintake", "water", "hydration"},
}

// AutoDetect builds a best-effort column mapping by matching normalized
// header text against field aliases. Each header maps at most one field and
// each field claims at most one header; earlier headers win.
func AutoDetect(headers []string) internal.ColumnMapping {
	detected := make(internal.ColumnMapping)
	for _, key := range internal.FieldKeys {
		for _, header := range headers {
			if claimed(detected, header) {
				continue
			}
			if headerMatches(header, key) {
				detected[key] = header
				break
			}
		}
	}
	return detected
}

func headerMatches(header string, key internal.FieldKey) bool {
	norm := normalizeHeader(header)
	for _, alias := range fieldAliases[key] {
		if strings.Contains(norm, alias) {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases and strips separators so "Sleep Hours",
// "sleep_hours" and "SleepHours" all compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ', '(', ')':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func claimed(m internal.ColumnMapping, header string) bool {
	for _, h := range m {
		if h == header {
			return true
		}
	}
	return false
}
