package csv

import "strings"

// RawTable is the parsed form of an uploaded file. Every row has exactly
// len(Headers) cells; source lines that did not are counted in Dropped.
// The table is never modified after Parse returns.
type RawTable struct {
	Headers []string
	Rows    [][]string
	Dropped int
}

// Column returns the index of the first header equal to name, or -1.
func (t *RawTable) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Parse turns raw CSV text into a RawTable. The first non-blank line is the
// header row. Fields may be double-quoted to protect embedded commas; quote
// characters are stripped from the cell content. Rows whose field count does
// not match the header count are dropped, not reported as errors.
func Parse(text string) (*RawTable, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, &ParseError{Reason: "file must contain a header row and at least one data row"}
	}

	headers := splitLine(lines[0])
	table := &RawTable{Headers: headers}
	for _, line := range lines[1:] {
		cells := splitLine(line)
		if len(cells) != len(headers) {
			table.Dropped++
			continue
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// splitLine scans one line character by character, toggling quote state on '"'
// and treating ',' as a delimiter only outside quotes. Cells are trimmed.
func splitLine(line string) []string {
	var (
		cells    []string
		cell     strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}
