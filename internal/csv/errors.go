package csv

import (
	"fmt"
	"strings"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// ParseError means the whole file is unusable (not enough lines to contain a
// header plus at least one data row).
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "csv: " + e.Reason
}

// FormatError is raised by NormalizeNumber when a cell cannot be read as a
// finite number. It keeps the field label and the original raw value so row
// errors can quote what the user actually typed.
type FormatError struct {
	Field string
	Raw   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Raw)
}

// MappingIncompleteError blocks the transform before any row is processed.
// It lists every schema field that has no mapped header.
type MappingIncompleteError struct {
	Missing []internal.FieldKey
}

func (e *MappingIncompleteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "unmapped required fields: " + strings.Join(names, ", ")
}
