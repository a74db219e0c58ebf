package csv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeNumber reads a raw CSV cell as a number. European-style decimal
// commas are tolerated: a comma with no dot present is treated as the decimal
// separator. Everything except digits, the dot, and a leading minus is
// stripped before parsing, so "7,5 h" and " $12.30 " both succeed.
//
// Empty input (or input that is empty once cleaned) is a FormatError; callers
// that allow blank optional cells must check for emptiness before calling.
func NormalizeNumber(raw, fieldLabel string) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, &FormatError{Field: fieldLabel, Raw: raw}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, &FormatError{Field: fieldLabel, Raw: raw}
	}
	return d.InexactFloat64(), nil
}
