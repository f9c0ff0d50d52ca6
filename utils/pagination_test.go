package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		total      int64
		wantOffset int
		wantPage   int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"empty listing has one page", 1, 0, 0, 1, 1, false, false},
		{"single partial page", 1, 3, 0, 1, 1, false, false},
		{"exactly one full page", 1, 10, 0, 1, 1, false, false},
		{"first of two pages", 1, 13, 0, 1, 2, true, false},
		{"remainder on the last page", 2, 13, 10, 2, 2, false, true},
		{"out of range clamps to last", 3, 13, 10, 2, 2, false, true},
		{"evenly divisible total", 2, 20, 10, 2, 2, false, true},
		{"page below range clamps to first", 0, 13, 0, 1, 2, true, false},
		{"middle page", 2, 35, 10, 2, 4, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, meta := Paginate(tt.page, tt.total)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantPage, meta.Page)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNext)
			assert.Equal(t, tt.wantPrev, meta.HasPrevious)
			assert.Equal(t, PageSize, meta.PageSize)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
