package propagate

import (
	"context"
	"strings"
)

// CopyPrefix is the title prefix the host assigns to a sheet duplicated into a spreadsheet.
const CopyPrefix = "Copy of "

// File is an entry in a container (Drive folder) listing. It may or may not be a spreadsheet.
type File struct {
	ID       string
	Name     string
	MimeType string
}

// Sheet is a snapshot of a worksheet's identity and grid size.
type Sheet struct {
	ID      int64
	Title   string
	Index   int
	Rows    int
	Columns int
}

// Protection is an editor allow-list attached to a whole sheet (Region == nil) or to a region of
// a sheet. ID is the host identifier and is zero for a protection that has not been created yet.
type Protection struct {
	ID          int64
	Sheet       string
	Region      *Region
	Editors     []string
	Description string
}

func (p Protection) IsSheet() bool {
	return p.Region == nil
}

// DocumentStore is the document-store capability: open, create and list spreadsheets and place
// them in containers.
type DocumentStore interface {
	Open(ctx context.Context, id string) (Document, error)
	Create(ctx context.Context, title string) (Document, error)
	List(ctx context.Context, containerID string) ([]File, error)
	AddToContainer(ctx context.Context, documentID string, containerID string) error
}

// Document is the grid-mutation capability of an open spreadsheet. Sheets are passed by value
// and identified by Sheet.ID, so a Sheet snapshot is only valid until the next structural change.
type Document interface {
	ID() string
	Title() string
	Sheets(ctx context.Context) ([]Sheet, error)

	// CopySheetTo duplicates one of this document's sheets into the target document. The host
	// titles the duplicate "Copy of <title>".
	CopySheetTo(ctx context.Context, sheet Sheet, target Document) (Sheet, error)

	// MarkTemporary tags a sheet as a transient duplicate owned by a propagation cycle and
	// TemporarySheets returns the IDs of the tagged sheets. Deleting a sheet removes its tag.
	MarkTemporary(ctx context.Context, sheet Sheet) error
	UnmarkTemporary(ctx context.Context, sheet Sheet) error
	TemporarySheets(ctx context.Context) ([]int64, error)

	RenameSheet(ctx context.Context, sheet Sheet, title string) error
	DeleteSheet(ctx context.Context, sheet Sheet) error

	// DeleteRows and DeleteColumns remove 'count' rows/columns starting at the 1-based 'from'.
	DeleteRows(ctx context.Context, sheet Sheet, from int, count int) error
	DeleteColumns(ctx context.Context, sheet Sheet, from int, count int) error
	AppendRows(ctx context.Context, sheet Sheet, count int) error
	AppendColumns(ctx context.Context, sheet Sheet, count int) error

	// CopyRange copies the values and formulas of the region from one sheet to the same
	// coordinates on another sheet of this document.
	CopyRange(ctx context.Context, from Sheet, to Sheet, region Region) error

	NamedRegions(ctx context.Context) ([]Region, error)
	Protections(ctx context.Context, sheet Sheet) ([]Protection, error)
	Protect(ctx context.Context, sheet Sheet, protection Protection) error
	Unprotect(ctx context.Context, protection Protection) error
}

// FindSheet returns the sheet with exactly the given title.
func FindSheet(sheets []Sheet, title string) (Sheet, bool) {
	for _, s := range sheets {
		if s.Title == title {
			return s, true
		}
	}

	return Sheet{}, false
}

// StripCopyPrefix removes the host's "Copy of " prefix from a duplicated sheet title.
func StripCopyPrefix(title string) string {
	return strings.TrimPrefix(title, CopyPrefix)
}
