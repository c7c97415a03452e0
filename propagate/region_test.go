package propagate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teamA = Region{Name: "TeamA", Sheet: "Roster", StartRow: 1, StartCol: 1, EndRow: 10, EndCol: 3}

func TestFindContainingRegions(t *testing.T) {
	regions := []Region{teamA}

	assert.Equal(t, []Region{teamA}, FindContainingRegions(Point{Row: 5, Col: 2}, regions))
	assert.Empty(t, FindContainingRegions(Point{Row: 20, Col: 2}, regions))
}

func TestFindContainingRegionsOnBoundary(t *testing.T) {
	regions := []Region{teamA}

	for _, p := range []Point{{1, 1}, {10, 3}, {1, 3}, {10, 1}, {5, 3}} {
		assert.Len(t, FindContainingRegions(p, regions), 1, "expected %v to be contained", p)
	}

	for _, p := range []Point{{0, 1}, {11, 3}, {5, 4}, {5, 0}} {
		assert.Empty(t, FindContainingRegions(p, regions), "expected %v to be outside", p)
	}
}

func TestFindContainingRegionsWithOverlappingRegions(t *testing.T) {
	teamB := Region{Name: "TeamB", Sheet: "Roster", StartRow: 5, StartCol: 2, EndRow: 12, EndCol: 6}
	totals := Region{Name: "Totals", Sheet: "Roster", StartRow: 20, StartCol: 1, EndRow: 20, EndCol: 6}

	regions := []Region{teamA, teamB, totals}

	assert.Equal(t, []Region{teamA, teamB}, FindContainingRegions(Point{Row: 6, Col: 3}, regions))
	assert.Equal(t, []Region{teamB}, FindContainingRegions(Point{Row: 11, Col: 5}, regions))
	assert.Equal(t, []Region{totals}, FindContainingRegions(Point{Row: 20, Col: 1}, regions))
	assert.NotNil(t, FindContainingRegions(Point{Row: 30, Col: 30}, regions))
}

func TestRegionWithin(t *testing.T) {
	inner := Region{StartRow: 2, StartCol: 2, EndRow: 3, EndCol: 3}

	assert.True(t, inner.Within(teamA))
	assert.True(t, teamA.Within(teamA))
	assert.False(t, teamA.Within(inner))
	assert.False(t, Region{StartRow: 9, StartCol: 1, EndRow: 11, EndCol: 1}.Within(teamA))
}

func TestRegionA1(t *testing.T) {
	assert.Equal(t, "'Roster'!A1:C10", teamA.A1())
	assert.Equal(t, "AA3:AB4", Region{StartRow: 3, StartCol: 27, EndRow: 4, EndCol: 28}.A1())
	assert.Equal(t, "'Bob''s'!B2:B2", Region{Sheet: "Bob's", StartRow: 2, StartCol: 2, EndRow: 2, EndCol: 2}.A1())
}

func TestParseCell(t *testing.T) {
	tests := map[string]Point{
		"A1":   {Row: 1, Col: 1},
		"b5":   {Row: 5, Col: 2},
		"Z10":  {Row: 10, Col: 26},
		"AA1":  {Row: 1, Col: 27},
		" C7 ": {Row: 7, Col: 3},
	}

	for cell, expected := range tests {
		p, err := ParseCell(cell)
		require.NoError(t, err, cell)
		assert.Equal(t, expected, p, cell)
	}

	for _, cell := range []string{"", "A", "5", "A0", "5A", "A-1", "Roster!A1"} {
		_, err := ParseCell(cell)
		assert.Error(t, err, cell)
	}
}
