package google

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
)

var roster = &sheets.SheetProperties{
	SheetId: 7,
	Title:   "Roster",
	Index:   2,
	GridProperties: &sheets.GridProperties{
		RowCount:    100,
		ColumnCount: 26,
	},
}

func TestToSheet(t *testing.T) {
	assert.Equal(t, propagate.Sheet{ID: 7, Title: "Roster", Index: 2, Rows: 100, Columns: 26}, toSheet(roster))
}

func TestGridRange(t *testing.T) {
	r := gridRange(7, propagate.Region{StartRow: 1, StartCol: 1, EndRow: 10, EndCol: 3})

	assert.Equal(t, int64(7), r.SheetId)
	assert.Equal(t, int64(0), r.StartRowIndex)
	assert.Equal(t, int64(10), r.EndRowIndex)
	assert.Equal(t, int64(0), r.StartColumnIndex)
	assert.Equal(t, int64(3), r.EndColumnIndex)
}

func TestToRegion(t *testing.T) {
	bounded := toRegion(&sheets.GridRange{SheetId: 7, StartRowIndex: 1, EndRowIndex: 4, StartColumnIndex: 1, EndColumnIndex: 3}, roster)
	assert.Equal(t, propagate.Region{Sheet: "Roster", StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 3}, bounded)

	columns := toRegion(&sheets.GridRange{SheetId: 7, StartColumnIndex: 0, EndColumnIndex: 2}, roster)
	assert.Equal(t, propagate.Region{Sheet: "Roster", StartRow: 1, StartCol: 1, EndRow: 100, EndCol: 2}, columns)

	region := propagate.Region{Sheet: "Roster", StartRow: 3, StartCol: 2, EndRow: 8, EndCol: 5}
	assert.Equal(t, region, toRegion(gridRange(7, region), roster))
}

func TestToProtection(t *testing.T) {
	sheet := toProtection(&sheets.ProtectedRange{
		ProtectedRangeId: 100,
		Range:            &sheets.GridRange{SheetId: 7},
		Editors:          &sheets.Editors{Users: []string{"owner@example.com"}},
	}, roster)

	assert.True(t, sheet.IsSheet())
	assert.Equal(t, int64(100), sheet.ID)
	assert.Equal(t, "Roster", sheet.Sheet)
	assert.Equal(t, []string{"owner@example.com"}, sheet.Editors)

	area := toProtection(&sheets.ProtectedRange{
		ProtectedRangeId: 101,
		Range:            &sheets.GridRange{SheetId: 7, StartRowIndex: 0, EndRowIndex: 10, StartColumnIndex: 0, EndColumnIndex: 3},
		Description:      "team A",
	}, roster)

	require.False(t, area.IsSheet())
	assert.Equal(t, "'Roster'!A1:C10", area.Region.A1())
	assert.Equal(t, "team A", area.Description)
	assert.NotNil(t, area.Editors)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap(nil))

	err := wrap(&googleapi.Error{Code: 403, Message: "The caller does not have permission"})
	assert.ErrorIs(t, err, propagate.ErrPermissionDenied)

	other := &googleapi.Error{Code: 500, Message: "backend error"}
	assert.Same(t, other, wrap(other))

	plain := errors.New("offline")
	assert.Equal(t, plain, wrap(plain))
}

func TestLogSheet(t *testing.T) {
	tests := map[string]string{
		"Log!A1:G":         "Log",
		"'Run Log'!A1:G":   "Run Log",
		"'Bob''s Log'!A:G": "Bob's Log",
	}

	for area, expected := range tests {
		title, err := LogSheet(area)
		require.NoError(t, err, area)
		assert.Equal(t, expected, title, area)
	}

	_, err := LogSheet("A1:G")
	assert.Error(t, err)
}

func TestPruneRequests(t *testing.T) {
	requests := pruneRequests(7, []int{9, 2, 3, 4, 8})
	require.Len(t, requests, 2)

	first := requests[0].DeleteDimension.Range
	assert.Equal(t, int64(2), first.StartIndex)
	assert.Equal(t, int64(5), first.EndIndex)

	second := requests[1].DeleteDimension.Range
	assert.Equal(t, int64(5), second.StartIndex)
	assert.Equal(t, int64(7), second.EndIndex)
	assert.Equal(t, "ROWS", second.Dimension)

	assert.Empty(t, pruneRequests(7, nil))
}

func TestFirstRow(t *testing.T) {
	tests := map[string]int{
		"Log!A1:G":          0,
		"Log!A3:G":          2,
		"'Run log'!B12:H40": 11,
		"Log!$A$5:$G":       4,
		"Log!A:G":           0,
		"Log":               0,
	}

	for area, expected := range tests {
		assert.Equal(t, expected, firstRow(area), area)
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), cutoff(now, 30))
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), cutoff(now, 1))
}

func TestLogRecordRow(t *testing.T) {
	record := LogRecord{
		Timestamp: time.Date(2024, time.March, 10, 15, 4, 5, 0, time.UTC),
		Command:   "update-all",
		Target:    "*",
		Updated:   12,
		Failed:    1,
	}

	index := columnIndex([][]any{{"Timestamp", "Command", "", "Updated", "Failed"}})
	assert.Equal(t, []any{"2024-03-10 15:04:05", "update-all", "", 12, 1}, record.row(index))
}
