package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesRowCount(t *testing.T) {
	text := "date,mood,sleep\n2024-01-01,8,7.5\n2024-01-02,6,8\n2024-01-03,7,6.5\n"
	table, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "mood", "sleep"}, table.Headers)
	assert.Len(t, table.Rows, 3)
	assert.Equal(t, 0, table.Dropped)
}

func TestParseQuotedFieldsWithEmbeddedCommas(t *testing.T) {
	text := "date,\"notes, extra\"\n2024-01-01,\"slept well, woke early\"\n"
	table, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "notes, extra"}, table.Headers)
	assert.Equal(t, []string{"2024-01-01", "slept well, woke early"}, table.Rows[0])
}

func TestParseTrimsCellsAndHeaders(t *testing.T) {
	table, err := Parse("  date , mood \n 2024-01-01 ,  8 \n")
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "mood"}, table.Headers)
	assert.Equal(t, []string{"2024-01-01", "8"}, table.Rows[0])
}

func TestParseDropsMalformedRows(t *testing.T) {
	text := "date,mood\n2024-01-01,8\n2024-01-02,6,extra\nonly-one-cell\n2024-01-03,7\n"
	table, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Dropped)
}

func TestParseSkipsBlankLinesAndCRLF(t *testing.T) {
	text := "date,mood\r\n\r\n2024-01-01,8\r\n\n2024-01-02,6\r\n"
	table, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-01-01", "8"}, table.Rows[0])
}

func TestParseTooFewLines(t *testing.T) {
	for _, text := range []string{"", "\n\n", "date,mood\n", "date,mood"} {
		_, err := Parse(text)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q should not parse", text)
	}
}

func TestColumnLookup(t *testing.T) {
	table, err := Parse("a,b,c\n1,2,3\n")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Column("b"))
	assert.Equal(t, -1, table.Column("missing"))
}
