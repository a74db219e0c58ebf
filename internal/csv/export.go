package csv

import (
	"strconv"
	"strings"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// Export serializes a batch back to CSV text in the fixed schema column
// order, the inverse of Parse. Numbers are written with the shortest
// representation that round-trips; blank fields stay blank.
func Export(batch *ImportBatch) string {
	var b strings.Builder
	for i, key := range internal.FieldKeys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteCell(string(key)))
	}
	b.WriteByte('\n')

	for _, entry := range batch.Entries {
		b.WriteString(quoteCell(entry.Date))
		for _, key := range internal.FieldKeys[1:] {
			b.WriteByte(',')
			if v := entry.Value(key); v != nil {
				b.WriteString(strconv.FormatFloat(*v, 'f', -1, 64))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// quoteCell wraps a cell in double quotes when it contains a comma or quote,
// so the output survives a round trip through Parse.
func quoteCell(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, "") + `"`
	}
	return s
}
