package csv

import (
	"fmt"
	"time"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// ImportBatch holds the validated entries of one upload plus the per-row
// errors accumulated while producing them. It lives only for the duration of
// one import.
type ImportBatch struct {
	Entries []internal.HealthRecord
	Errors  []string
}

// Dates returns the batch's date set in entry order.
func (b *ImportBatch) Dates() []string {
	dates := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		dates[i] = e.Date
	}
	return dates
}

type fieldRange struct {
	min, max float64
}

// Declared value ranges per numeric field. exercise_minutes and water_intake
// have no upper bound.
var fieldRanges = map[internal.FieldKey]fieldRange{
	internal.FieldMood:            {1, 10},
	internal.FieldEnergy:          {1, 10},
	internal.FieldStressLevel:     {1, 10},
	internal.FieldSleepHours:      {0, 24},
	internal.FieldExerciseMinutes: {0, -1},
	internal.FieldWaterIntake:     {0, -1},
}

// dateLayouts are the accepted date formats, tried in order. Whatever
// matches is canonicalized to YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(raw string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Transform applies a column mapping to every row of the table, producing a
// batch of HealthRecord candidates. It fails outright only when required
// fields are unmapped; individual bad rows are accumulated as errors and
// excluded, never raised.
//
// Rows sharing a date within one file are deduplicated after validation: the
// last occurrence in row order wins. This mirrors what merge and overwrite
// reconciliation would do anyway and makes the policy explicit.
func Transform(table *RawTable, mapping internal.ColumnMapping) (*ImportBatch, error) {
	if missing := mapping.MissingFields(); len(missing) > 0 {
		return nil, &MappingIncompleteError{Missing: missing}
	}

	columns := make(map[internal.FieldKey]int, len(internal.FieldKeys))
	for _, key := range internal.FieldKeys {
		columns[key] = table.Column(mapping[key])
	}

	batch := &ImportBatch{}
	for n, row := range table.Rows {
		record, rowErr := transformRow(row, columns)
		if rowErr != "" {
			// Row numbers are 1-based data rows, matching what the user
			// sees below the header line.
			batch.Errors = append(batch.Errors, fmt.Sprintf("Row %d: %s", n+1, rowErr))
			continue
		}
		batch.Entries = append(batch.Entries, record)
	}

	batch.Entries = dedupeByDate(batch.Entries)
	return batch, nil
}

func transformRow(row []string, columns map[internal.FieldKey]int) (internal.HealthRecord, string) {
	var record internal.HealthRecord

	rawDate := cellAt(row, columns[internal.FieldDate])
	date, ok := parseDate(rawDate)
	if !ok {
		return record, fmt.Sprintf("%s: invalid date %q", internal.FieldDate, rawDate)
	}
	record.Date = date

	for _, key := range internal.FieldKeys {
		if key == internal.FieldDate {
			continue
		}
		raw := cellAt(row, columns[key])
		if raw == "" {
			continue
		}
		value, err := NormalizeNumber(raw, string(key))
		if err != nil {
			return record, fmt.Sprintf("%s: not a number %q", key, raw)
		}
		r := fieldRanges[key]
		if value < r.min || (r.max >= 0 && value > r.max) {
			return record, fmt.Sprintf("%s: value %v out of range", key, value)
		}
		record.SetValue(key, &value)
	}
	return record, ""
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// dedupeByDate keeps only the last entry per date, preserving the row order
// of the surviving occurrences.
func dedupeByDate(entries []internal.HealthRecord) []internal.HealthRecord {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.Date] = i
	}
	out := entries[:0]
	for i, e := range entries {
		if last[e.Date] == i {
			out = append(out, e)
		}
	}
	return out
}
