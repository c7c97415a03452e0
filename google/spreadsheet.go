package google

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
)

// Spreadsheet is a Google Sheets spreadsheet accessed through the Sheets v4 API.
type Spreadsheet struct {
	service *sheets.Service
	id      string
	title   string
}

// OpenSpreadsheet retrieves the spreadsheet title, which also verifies that the ID refers to a
// spreadsheet the caller can read.
func OpenSpreadsheet(ctx context.Context, service *sheets.Service, id string) (*Spreadsheet, error) {
	spreadsheet, err := service.Spreadsheets.Get(id).Fields("spreadsheetId", "properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet %v (%w)", id, wrap(err))
	}

	return &Spreadsheet{
		service: service,
		id:      spreadsheet.SpreadsheetId,
		title:   spreadsheet.Properties.Title,
	}, nil
}

func (s *Spreadsheet) ID() string {
	return s.id
}

func (s *Spreadsheet) Title() string {
	return s.title
}

func (s *Spreadsheet) Sheets(ctx context.Context) ([]propagate.Sheet, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve sheets for %v (%w)", s.title, wrap(err))
	}

	list := []propagate.Sheet{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			list = append(list, toSheet(sheet.Properties))
		}
	}

	return list, nil
}

// CopySheetTo duplicates the sheet into the target spreadsheet. The target must be another
// Spreadsheet (or this one).
func (s *Spreadsheet) CopySheetTo(ctx context.Context, sheet propagate.Sheet, target propagate.Document) (propagate.Sheet, error) {
	rq := sheets.CopySheetToAnotherSpreadsheetRequest{
		DestinationSpreadsheetId: target.ID(),
	}

	properties, err := s.service.Spreadsheets.Sheets.CopyTo(s.id, sheet.ID, &rq).Context(ctx).Do()
	if err != nil {
		return propagate.Sheet{}, wrap(err)
	}

	logging.Get("sheets").Debug().Str("from", s.title).Str("to", target.Title()).Str("sheet", properties.Title).Msg("copied sheet")

	return toSheet(properties), nil
}

// TemporaryKey is the developer metadata key that marks a sheet as a transient duplicate.
const TemporaryKey = "PARENT_SHEETS_TEMPORARY"

func (s *Spreadsheet) MarkTemporary(ctx context.Context, sheet propagate.Sheet) error {
	return s.batch(ctx, &sheets.Request{
		CreateDeveloperMetadata: &sheets.CreateDeveloperMetadataRequest{
			DeveloperMetadata: &sheets.DeveloperMetadata{
				MetadataKey:   TemporaryKey,
				MetadataValue: sheet.Title,
				Location: &sheets.DeveloperMetadataLocation{
					SheetId:         sheet.ID,
					ForceSendFields: []string{"SheetId"},
				},
				Visibility: "DOCUMENT",
			},
		},
	})
}

func (s *Spreadsheet) UnmarkTemporary(ctx context.Context, sheet propagate.Sheet) error {
	return s.batch(ctx, &sheets.Request{
		DeleteDeveloperMetadata: &sheets.DeleteDeveloperMetadataRequest{
			DataFilter: &sheets.DataFilter{
				DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{
					MetadataKey: TemporaryKey,
					MetadataLocation: &sheets.DeveloperMetadataLocation{
						SheetId:         sheet.ID,
						ForceSendFields: []string{"SheetId"},
					},
				},
			},
		},
	})
}

// TemporarySheets returns the IDs of the sheets tagged by MarkTemporary. Metadata attached to a
// sheet is removed along with the sheet.
func (s *Spreadsheet) TemporarySheets(ctx context.Context) ([]int64, error) {
	rq := sheets.SearchDeveloperMetadataRequest{
		DataFilters: []*sheets.DataFilter{
			{DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{
				MetadataKey:  TemporaryKey,
				LocationType: "SHEET",
			}},
		},
	}

	response, err := s.service.Spreadsheets.DeveloperMetadata.Search(s.id, &rq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve temporary sheets for %v (%w)", s.title, wrap(err))
	}

	list := []int64{}
	for _, v := range response.MatchedDeveloperMetadata {
		if m := v.DeveloperMetadata; m != nil && m.Location != nil {
			list = append(list, m.Location.SheetId)
		}
	}

	return list, nil
}

func (s *Spreadsheet) RenameSheet(ctx context.Context, sheet propagate.Sheet, title string) error {
	return s.batch(ctx, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:         sheet.ID,
				Title:           title,
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "title",
		},
	})
}

func (s *Spreadsheet) DeleteSheet(ctx context.Context, sheet propagate.Sheet) error {
	return s.batch(ctx, &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{
			SheetId:         sheet.ID,
			ForceSendFields: []string{"SheetId"},
		},
	})
}

func (s *Spreadsheet) DeleteRows(ctx context.Context, sheet propagate.Sheet, from int, count int) error {
	return s.deleteDimension(ctx, sheet, "ROWS", from, count)
}

func (s *Spreadsheet) DeleteColumns(ctx context.Context, sheet propagate.Sheet, from int, count int) error {
	return s.deleteDimension(ctx, sheet, "COLUMNS", from, count)
}

func (s *Spreadsheet) AppendRows(ctx context.Context, sheet propagate.Sheet, count int) error {
	return s.appendDimension(ctx, sheet, "ROWS", count)
}

func (s *Spreadsheet) AppendColumns(ctx context.Context, sheet propagate.Sheet, count int) error {
	return s.appendDimension(ctx, sheet, "COLUMNS", count)
}

// CopyRange copies values, formulas and formatting of the region from one sheet to the same
// coordinates on another.
func (s *Spreadsheet) CopyRange(ctx context.Context, from propagate.Sheet, to propagate.Sheet, region propagate.Region) error {
	return s.batch(ctx, &sheets.Request{
		CopyPaste: &sheets.CopyPasteRequest{
			Source:           gridRange(from.ID, region),
			Destination:      gridRange(to.ID, region),
			PasteType:        "PASTE_NORMAL",
			PasteOrientation: "NORMAL",
		},
	})
}

// NamedRegions returns the named ranges of the spreadsheet. Unbounded rows or columns are
// resolved against the size of the sheet.
func (s *Spreadsheet) NamedRegions(ctx context.Context) ([]propagate.Region, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.id).Fields("namedRanges", "sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve named ranges for %v (%w)", s.title, wrap(err))
	}

	index := map[int64]*sheets.SheetProperties{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			index[sheet.Properties.SheetId] = sheet.Properties
		}
	}

	list := []propagate.Region{}
	for _, named := range spreadsheet.NamedRanges {
		if named.Range == nil {
			continue
		}

		if properties, ok := index[named.Range.SheetId]; ok {
			region := toRegion(named.Range, properties)
			region.Name = named.Name
			list = append(list, region)
		}
	}

	return list, nil
}

// Protections returns the protected ranges of the sheet. A protected range without any row or
// column bounds is a whole-sheet protection.
func (s *Spreadsheet) Protections(ctx context.Context, sheet propagate.Sheet) ([]propagate.Protection, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.id).Fields("sheets(properties,protectedRanges)").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve protections for %v (%w)", s.title, wrap(err))
	}

	list := []propagate.Protection{}
	for _, v := range spreadsheet.Sheets {
		if v.Properties == nil || v.Properties.SheetId != sheet.ID {
			continue
		}

		for _, p := range v.ProtectedRanges {
			if p.Range != nil {
				list = append(list, toProtection(p, v.Properties))
			}
		}
	}

	return list, nil
}

func (s *Spreadsheet) Protect(ctx context.Context, sheet propagate.Sheet, protection propagate.Protection) error {
	var r *sheets.GridRange
	if protection.IsSheet() {
		r = &sheets.GridRange{
			SheetId:         sheet.ID,
			ForceSendFields: []string{"SheetId"},
		}
	} else {
		r = gridRange(sheet.ID, *protection.Region)
	}

	return s.batch(ctx, &sheets.Request{
		AddProtectedRange: &sheets.AddProtectedRangeRequest{
			ProtectedRange: &sheets.ProtectedRange{
				Range:       r,
				Description: protection.Description,
				Editors: &sheets.Editors{
					Users: protection.Editors,
				},
			},
		},
	})
}

func (s *Spreadsheet) Unprotect(ctx context.Context, protection propagate.Protection) error {
	return s.batch(ctx, &sheets.Request{
		DeleteProtectedRange: &sheets.DeleteProtectedRangeRequest{
			ProtectedRangeId: protection.ID,
			ForceSendFields:  []string{"ProtectedRangeId"},
		},
	})
}

func (s *Spreadsheet) deleteDimension(ctx context.Context, sheet propagate.Sheet, dimension string, from int, count int) error {
	return s.batch(ctx, &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:         sheet.ID,
				Dimension:       dimension,
				StartIndex:      int64(from - 1),
				EndIndex:        int64(from - 1 + count),
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		},
	})
}

func (s *Spreadsheet) appendDimension(ctx context.Context, sheet propagate.Sheet, dimension string, count int) error {
	return s.batch(ctx, &sheets.Request{
		AppendDimension: &sheets.AppendDimensionRequest{
			SheetId:         sheet.ID,
			Dimension:       dimension,
			Length:          int64(count),
			ForceSendFields: []string{"SheetId"},
		},
	})
}

func (s *Spreadsheet) batch(ctx context.Context, requests ...*sheets.Request) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	if _, err := s.service.Spreadsheets.BatchUpdate(s.id, &rq).Context(ctx).Do(); err != nil {
		return wrap(err)
	}

	return nil
}

func toSheet(properties *sheets.SheetProperties) propagate.Sheet {
	sheet := propagate.Sheet{
		ID:    properties.SheetId,
		Title: properties.Title,
		Index: int(properties.Index),
	}

	if grid := properties.GridProperties; grid != nil {
		sheet.Rows = int(grid.RowCount)
		sheet.Columns = int(grid.ColumnCount)
	}

	return sheet
}

// gridRange converts a 1-based inclusive region to a zero-based half-open grid range.
func gridRange(sheetID int64, region propagate.Region) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(region.StartRow - 1),
		EndRowIndex:      int64(region.EndRow),
		StartColumnIndex: int64(region.StartCol - 1),
		EndColumnIndex:   int64(region.EndCol),
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func toRegion(r *sheets.GridRange, properties *sheets.SheetProperties) propagate.Region {
	region := propagate.Region{
		Sheet:    properties.Title,
		StartRow: int(r.StartRowIndex) + 1,
		StartCol: int(r.StartColumnIndex) + 1,
		EndRow:   int(r.EndRowIndex),
		EndCol:   int(r.EndColumnIndex),
	}

	if grid := properties.GridProperties; grid != nil {
		if r.EndRowIndex == 0 {
			region.EndRow = int(grid.RowCount)
		}

		if r.EndColumnIndex == 0 {
			region.EndCol = int(grid.ColumnCount)
		}
	}

	return region
}

func toProtection(p *sheets.ProtectedRange, properties *sheets.SheetProperties) propagate.Protection {
	protection := propagate.Protection{
		ID:          p.ProtectedRangeId,
		Sheet:       properties.Title,
		Description: p.Description,
		Editors:     []string{},
	}

	if p.Editors != nil {
		protection.Editors = append(protection.Editors, p.Editors.Users...)
	}

	r := p.Range
	if r.StartRowIndex != 0 || r.EndRowIndex != 0 || r.StartColumnIndex != 0 || r.EndColumnIndex != 0 {
		region := toRegion(r, properties)
		protection.Region = &region
	}

	return protection
}
