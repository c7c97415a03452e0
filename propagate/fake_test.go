package propagate

import (
	"context"
	"fmt"
	"slices"
)

// fakeHost is an in-memory spreadsheet host: documents are grids of strings, containers are
// lists of files.
type fakeHost struct {
	documents  map[string]*fakeDocument
	containers map[string][]File
	next       int64

	failAdd error
}

type fakeSheet struct {
	id    int64
	title string
	cells [][]string
}

type fakeDocument struct {
	host        *fakeHost
	id          string
	title       string
	sheets      []*fakeSheet
	named       []Region
	protections []Protection
	temporary   []int64
	calls       []string

	denyProtect bool
	failCopy    error
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		documents:  map[string]*fakeDocument{},
		containers: map[string][]File{},
	}
}

func (h *fakeHost) nextID() int64 {
	h.next++
	return h.next
}

func (h *fakeHost) document(id, title string, sheets ...*fakeSheet) *fakeDocument {
	doc := &fakeDocument{
		host:   h,
		id:     id,
		title:  title,
		sheets: sheets,
	}

	h.documents[id] = doc

	return doc
}

func (h *fakeHost) sheet(title string, rows, cols int) *fakeSheet {
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
		for c := range cells[r] {
			cells[r][c] = fmt.Sprintf("%v:%v%v", title, column(c+1), r+1)
		}
	}

	return &fakeSheet{
		id:    h.nextID(),
		title: title,
		cells: cells,
	}
}

func (h *fakeHost) file(container string, f File) {
	h.containers[container] = append(h.containers[container], f)
}

func (h *fakeHost) Open(ctx context.Context, id string) (Document, error) {
	if doc, ok := h.documents[id]; ok {
		return doc, nil
	}

	return nil, fmt.Errorf("%v is not a spreadsheet", id)
}

func (h *fakeHost) Create(ctx context.Context, title string) (Document, error) {
	id := fmt.Sprintf("doc-%v", h.nextID())
	doc := h.document(id, title, h.sheet(DefaultSheet, 4, 4))

	for r := range doc.sheets[0].cells {
		for c := range doc.sheets[0].cells[r] {
			doc.sheets[0].cells[r][c] = ""
		}
	}

	return doc, nil
}

func (h *fakeHost) List(ctx context.Context, container string) ([]File, error) {
	return h.containers[container], nil
}

func (h *fakeHost) AddToContainer(ctx context.Context, id string, container string) error {
	doc, ok := h.documents[id]
	if !ok {
		return fmt.Errorf("no such document %v", id)
	} else if h.failAdd != nil {
		return h.failAdd
	}

	h.file(container, File{ID: id, Name: doc.title, MimeType: "application/vnd.google-apps.spreadsheet"})

	return nil
}

func (d *fakeDocument) ID() string {
	return d.id
}

func (d *fakeDocument) Title() string {
	return d.title
}

func (d *fakeDocument) Sheets(ctx context.Context) ([]Sheet, error) {
	list := []Sheet{}
	for i, s := range d.sheets {
		list = append(list, s.info(i))
	}

	return list, nil
}

func (d *fakeDocument) CopySheetTo(ctx context.Context, sheet Sheet, target Document) (Sheet, error) {
	d.calls = append(d.calls, "copy-sheet "+sheet.Title)

	src, _ := d.find(sheet.ID)
	if src == nil {
		return Sheet{}, fmt.Errorf("no such sheet %v", sheet.ID)
	}

	dest := target.(interface{ fake() *fakeDocument }).fake()
	if dest.failCopy != nil {
		return Sheet{}, dest.failCopy
	}

	copied := &fakeSheet{
		id:    d.host.nextID(),
		title: CopyPrefix + src.title,
		cells: clone(src.cells),
	}

	dest.sheets = append(dest.sheets, copied)

	return copied.info(len(dest.sheets) - 1), nil
}

func (d *fakeDocument) MarkTemporary(ctx context.Context, sheet Sheet) error {
	d.calls = append(d.calls, "mark "+sheet.Title)
	d.temporary = append(d.temporary, sheet.ID)

	return nil
}

func (d *fakeDocument) UnmarkTemporary(ctx context.Context, sheet Sheet) error {
	d.calls = append(d.calls, "unmark "+sheet.Title)
	d.temporary = slices.DeleteFunc(d.temporary, func(id int64) bool { return id == sheet.ID })

	return nil
}

func (d *fakeDocument) TemporarySheets(ctx context.Context) ([]int64, error) {
	return slices.Clone(d.temporary), nil
}

func (d *fakeDocument) RenameSheet(ctx context.Context, sheet Sheet, title string) error {
	d.calls = append(d.calls, "rename "+sheet.Title+" -> "+title)
	if s, _ := d.find(sheet.ID); s != nil {
		s.title = title
		return nil
	}

	return fmt.Errorf("no such sheet %v", sheet.ID)
}

func (d *fakeDocument) DeleteSheet(ctx context.Context, sheet Sheet) error {
	d.calls = append(d.calls, "delete-sheet "+sheet.Title)
	if _, ix := d.find(sheet.ID); ix >= 0 {
		d.sheets = slices.Delete(d.sheets, ix, ix+1)
		d.temporary = slices.DeleteFunc(d.temporary, func(id int64) bool { return id == sheet.ID })
		return nil
	}

	return fmt.Errorf("no such sheet %v", sheet.ID)
}

func (d *fakeDocument) DeleteRows(ctx context.Context, sheet Sheet, from int, count int) error {
	d.calls = append(d.calls, fmt.Sprintf("delete-rows %v %v %v", sheet.Title, from, count))
	s, _ := d.find(sheet.ID)
	s.cells = slices.Delete(s.cells, from-1, from-1+count)

	return nil
}

func (d *fakeDocument) DeleteColumns(ctx context.Context, sheet Sheet, from int, count int) error {
	d.calls = append(d.calls, fmt.Sprintf("delete-columns %v %v %v", sheet.Title, from, count))
	s, _ := d.find(sheet.ID)
	for r := range s.cells {
		s.cells[r] = slices.Delete(s.cells[r], from-1, from-1+count)
	}

	return nil
}

func (d *fakeDocument) AppendRows(ctx context.Context, sheet Sheet, count int) error {
	d.calls = append(d.calls, fmt.Sprintf("append-rows %v %v", sheet.Title, count))
	s, _ := d.find(sheet.ID)
	cols := s.info(0).Columns
	for i := 0; i < count; i++ {
		s.cells = append(s.cells, make([]string, cols))
	}

	return nil
}

func (d *fakeDocument) AppendColumns(ctx context.Context, sheet Sheet, count int) error {
	d.calls = append(d.calls, fmt.Sprintf("append-columns %v %v", sheet.Title, count))
	s, _ := d.find(sheet.ID)
	for r := range s.cells {
		s.cells[r] = append(s.cells[r], make([]string, count)...)
	}

	return nil
}

func (d *fakeDocument) CopyRange(ctx context.Context, from Sheet, to Sheet, region Region) error {
	d.calls = append(d.calls, fmt.Sprintf("copy-range %v -> %v %v", from.Title, to.Title, region.A1()))

	src, _ := d.find(from.ID)
	dest, _ := d.find(to.ID)
	if src == nil || dest == nil {
		return fmt.Errorf("no such sheet")
	}

	for _, s := range []*fakeSheet{src, dest} {
		grid := s.info(0)
		if region.StartRow < 1 || region.StartCol < 1 || region.EndRow > grid.Rows || region.EndCol > grid.Columns {
			return fmt.Errorf("range %v exceeds grid limits of '%v' (%vx%v)", region.A1(), s.title, grid.Rows, grid.Columns)
		}
	}

	for r := region.StartRow; r <= region.EndRow; r++ {
		for c := region.StartCol; c <= region.EndCol; c++ {
			dest.cells[r-1][c-1] = src.cells[r-1][c-1]
		}
	}

	return nil
}

func (d *fakeDocument) NamedRegions(ctx context.Context) ([]Region, error) {
	return d.named, nil
}

func (d *fakeDocument) Protections(ctx context.Context, sheet Sheet) ([]Protection, error) {
	list := []Protection{}
	for _, p := range d.protections {
		if p.Sheet == sheet.Title {
			list = append(list, p)
		}
	}

	return list, nil
}

func (d *fakeDocument) Protect(ctx context.Context, sheet Sheet, p Protection) error {
	d.calls = append(d.calls, "protect "+scope(p))
	if d.denyProtect {
		return fmt.Errorf("protect %v: %w", sheet.Title, ErrPermissionDenied)
	}

	p.ID = d.host.nextID()
	p.Sheet = sheet.Title
	d.protections = append(d.protections, p)

	return nil
}

func (d *fakeDocument) Unprotect(ctx context.Context, p Protection) error {
	d.calls = append(d.calls, "unprotect "+scope(p))
	if d.denyProtect {
		return fmt.Errorf("unprotect %v: %w", p.Sheet, ErrPermissionDenied)
	}

	for i, q := range d.protections {
		if q.ID == p.ID {
			d.protections = slices.Delete(d.protections, i, i+1)
			return nil
		}
	}

	return fmt.Errorf("no such protection %v", p.ID)
}

func (d *fakeDocument) find(id int64) (*fakeSheet, int) {
	for i, s := range d.sheets {
		if s.id == id {
			return s, i
		}
	}

	return nil, -1
}

func (d *fakeDocument) get(title string) *fakeSheet {
	for _, s := range d.sheets {
		if s.title == title {
			return s
		}
	}

	return nil
}

func (d *fakeDocument) titles() []string {
	list := []string{}
	for _, s := range d.sheets {
		list = append(list, s.title)
	}

	return list
}

func (d *fakeDocument) fake() *fakeDocument {
	return d
}

func (d *fakeDocument) reset() {
	d.calls = nil
}

func (s *fakeSheet) info(index int) Sheet {
	cols := 0
	if len(s.cells) > 0 {
		cols = len(s.cells[0])
	}

	return Sheet{
		ID:      s.id,
		Title:   s.title,
		Index:   index,
		Rows:    len(s.cells),
		Columns: cols,
	}
}

func clone(cells [][]string) [][]string {
	copied := make([][]string, len(cells))
	for i, row := range cells {
		copied[i] = slices.Clone(row)
	}

	return copied
}

func scope(p Protection) string {
	if p.Region == nil {
		return p.Sheet
	}

	return p.Region.A1()
}
