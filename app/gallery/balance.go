package gallery

import (
	"github.com/glimmerpics/glimmer/app/models"
)

// GridColumns is the fixed column count of the masonry grid. Landscape
// photos span two columns, everything else spans one.
const GridColumns = 6

// BalanceGrid reorders a sorted photo sequence so a two-column photo never
// starts at the second-to-last column of a row, which would leave a
// single-column gap. A greedy single pass: when exactly one single slot
// remains in the row and the current item is single-width while the next is
// double-width, the pair is swapped so the double-width item opens the next
// row. Only the order changes, never the set of photos.
func BalanceGrid(photos []models.Photo) []models.Photo {
	out := append([]models.Photo(nil), photos...)

	col := 0
	for i := 0; i < len(out); i++ {
		if col == GridColumns-2 && i+1 < len(out) &&
			out[i].GridSpan() == 1 && out[i+1].GridSpan() == 2 {
			out[i], out[i+1] = out[i+1], out[i]
		}
		col = (col + out[i].GridSpan()) % GridColumns
	}
	return out
}
