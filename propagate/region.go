package propagate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Point is a cell position. Rows and columns are 1-based.
type Point struct {
	Row int
	Col int
}

// Region is a rectangular area of a sheet, typically a named range. Rows and columns are 1-based
// and both bounds are inclusive.
type Region struct {
	Name     string
	Sheet    string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Contains returns true if the point lies inside the region. A point on the boundary is contained.
func (r Region) Contains(p Point) bool {
	return p.Row >= r.StartRow && p.Row <= r.EndRow && p.Col >= r.StartCol && p.Col <= r.EndCol
}

// Within returns true if the region lies entirely inside the outer region.
func (r Region) Within(outer Region) bool {
	return r.StartRow >= outer.StartRow &&
		r.EndRow <= outer.EndRow &&
		r.StartCol >= outer.StartCol &&
		r.EndCol <= outer.EndCol
}

// SameGeometry compares the coordinates of two regions, ignoring names.
func (r Region) SameGeometry(other Region) bool {
	return r.StartRow == other.StartRow &&
		r.StartCol == other.StartCol &&
		r.EndRow == other.EndRow &&
		r.EndCol == other.EndCol
}

func (r Region) Rows() int {
	return r.EndRow - r.StartRow + 1
}

func (r Region) Columns() int {
	return r.EndCol - r.StartCol + 1
}

// A1 formats the region in A1 notation, qualified with the sheet name if it has one.
func (r Region) A1() string {
	area := fmt.Sprintf("%v%v:%v%v", column(r.StartCol), r.StartRow, column(r.EndCol), r.EndRow)
	if r.Sheet == "" {
		return area
	}

	return fmt.Sprintf("'%v'!%v", strings.ReplaceAll(r.Sheet, "'", "''"), area)
}

func (r Region) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%v (%v)", r.Name, r.A1())
	}

	return r.A1()
}

// FindContainingRegions returns every region that contains the point, in the order given. An
// empty result means the point is not inside any region.
func FindContainingRegions(p Point, regions []Region) []Region {
	list := []Region{}
	for _, r := range regions {
		if r.Contains(p) {
			list = append(list, r)
		}
	}

	return list
}

// ParseCell converts an A1 cell reference (e.g. "B5") to a Point.
func ParseCell(cell string) (Point, error) {
	match := regexp.MustCompile(`^([a-zA-Z]+)([0-9]+)$`).FindStringSubmatch(strings.TrimSpace(cell))
	if len(match) < 3 {
		return Point{}, fmt.Errorf("invalid cell reference '%v' - expected something like 'B5'", cell)
	}

	col := 0
	for _, ch := range strings.ToUpper(match[1]) {
		col = col*26 + int(ch-'A'+1)
	}

	row, err := strconv.Atoi(match[2])
	if err != nil || row < 1 {
		return Point{}, fmt.Errorf("invalid cell reference '%v'", cell)
	}

	return Point{Row: row, Col: col}, nil
}

func column(c int) string {
	name := ""
	for c > 0 {
		c--
		name = string(rune('A'+c%26)) + name
		c /= 26
	}

	return name
}
