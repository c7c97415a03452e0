package google

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

const timestampFormat = "2006-01-02 15:04:05"

// LogRecord is one row of the run log kept in the template spreadsheet.
type LogRecord struct {
	Timestamp time.Time
	Command   string
	Target    string
	Updated   int
	Created   int
	Failed    int
	Warnings  int
}

var logColumns = []string{"timestamp", "command", "target", "updated", "created", "failed", "warnings"}

// LogSheet returns the title of the sheet referenced by a range like 'Log!A1:G'.
func LogSheet(area string) (string, error) {
	match := regexp.MustCompile(`^'?(.+?)'?!.*$`).FindStringSubmatch(strings.TrimSpace(area))
	if len(match) < 2 {
		return "", fmt.Errorf("invalid log range '%v' - expected something like 'Log!A1:G'", area)
	}

	return strings.ReplaceAll(match[1], "''", "'"), nil
}

// AppendLog appends a record to the log range. The column order is taken from the header row
// if there is one.
func (s *Spreadsheet) AppendLog(ctx context.Context, area string, record LogRecord) error {
	response, err := s.service.Spreadsheets.Values.Get(s.id, area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log sheet (%w)", wrap(err))
	}

	index := map[string]int{}
	for i, k := range logColumns {
		index[k] = i
	}

	if header := columnIndex(response.Values); len(header) > 0 {
		index = header
		logging.Get("log").Debug().Interface("index", index).Msg("log sheet column index")
	}

	rows := sheets.ValueRange{
		Values: [][]any{record.row(index)},
	}

	if _, err := s.service.Spreadsheets.Values.Append(s.id, area, &rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", wrap(err))
	}

	return nil
}

// PruneLog deletes the log rows with a timestamp older than 'retention' days.
func (s *Spreadsheet) PruneLog(ctx context.Context, area string, retention uint, now time.Time) (int, error) {
	log := logging.Get("log")

	title, err := LogSheet(area)
	if err != nil {
		return 0, err
	}

	worksheets, err := s.Sheets(ctx)
	if err != nil {
		return 0, err
	}

	var sheetID *int64
	for _, sheet := range worksheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Title), strings.TrimSpace(title)) {
			sheetID = &sheet.ID
		}
	}

	if sheetID == nil {
		return 0, fmt.Errorf("unable to identify worksheet for '%v'", area)
	}

	response, err := s.service.Spreadsheets.Values.Get(s.id, area).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve data from log sheet (%w)", wrap(err))
	}

	before := cutoff(now, retention)
	column := 0
	if ix, ok := columnIndex(response.Values)["timestamp"]; ok {
		column = ix
	}

	log.Info().Str("before", before.Format(time.DateOnly)).Msg("pruning log records")

	offset := firstRow(area)
	if response.Range != "" {
		offset = firstRow(response.Range)
	}

	list := []int{}
	for row, record := range response.Values {
		if column < len(record) {
			if timestamp, err := time.ParseInLocation(timestampFormat, fmt.Sprintf("%v", record[column]), now.Location()); err == nil && timestamp.Before(before) {
				list = append(list, offset+row)
			}
		}
	}

	requests := pruneRequests(*sheetID, list)
	if len(requests) > 0 {
		if err := s.batch(ctx, requests...); err != nil {
			return 0, err
		}
	}

	log.Info().Int("deleted", len(list)).Msg("pruned log sheet")

	return len(list), nil
}

var rangeStart = regexp.MustCompile(`!\$?[A-Za-z]*\$?([0-9]+)`)

// firstRow returns the zero-based sheet row of the first row of an A1 range. A range without a
// row number (e.g. 'Log!A:G') starts at the top of the sheet.
func firstRow(area string) int {
	match := rangeStart.FindStringSubmatch(area)
	if len(match) < 2 {
		return 0
	}

	row, err := strconv.Atoi(match[1])
	if err != nil || row < 1 {
		return 0
	}

	return row - 1
}

// pruneRequests groups the (zero-based) rows into contiguous ranges and returns the delete
// requests for them, adjusted for the rows removed by the preceding requests.
func pruneRequests(sheetID int64, rows []int) []*sheets.Request {
	requests := []*sheets.Request{}
	if len(rows) == 0 {
		return requests
	}

	list := slices.Clone(rows)
	slices.Sort(list)

	type span struct{ start, end int }

	spans := []span{}
	start := list[0]
	last := list[0]
	for _, row := range list[1:] {
		if row != last+1 {
			spans = append(spans, span{start, last})
			start = row
		}

		last = row
	}

	spans = append(spans, span{start, last})

	deleted := 0
	for _, r := range spans {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(r.start - deleted),
					EndIndex:        int64(r.end - deleted + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		})

		deleted += r.end - r.start + 1
	}

	return requests
}

func cutoff(now time.Time, retention uint) time.Time {
	before := now.AddDate(0, 0, -(int(retention) - 1))

	return time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, now.Location())
}

// columnIndex maps the known column names in the first row of values to their positions.
func columnIndex(values [][]any) map[string]int {
	index := map[string]int{}
	if len(values) == 0 {
		return index
	}

	for i, v := range values[0] {
		k := strings.ToLower(strings.ReplaceAll(fmt.Sprintf("%v", v), " ", ""))
		if slices.Contains(logColumns, k) {
			index[k] = i
		}
	}

	return index
}

func (r LogRecord) row(index map[string]int) []any {
	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	row := make([]any, columns)
	for i := range row {
		row[i] = ""
	}

	values := map[string]any{
		"timestamp": r.Timestamp.Format(timestampFormat),
		"command":   r.Command,
		"target":    r.Target,
		"updated":   r.Updated,
		"created":   r.Created,
		"failed":    r.Failed,
		"warnings":  r.Warnings,
	}

	for k, v := range values {
		if ix, ok := index[k]; ok {
			row[ix] = v
		}
	}

	return row
}
