package gallery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/app/models"
)

func aspectPhoto(id string, class models.AspectClass) models.Photo {
	p := photoFixture(id, "")
	p.AspectRatioClass = class
	return p
}

func TestBalanceGrid_PullsLandscapeBackFromRowEdge(t *testing.T) {
	// Five single-span photos fill columns 0..4; the landscape at the end
	// would be split across rows, so it swaps with the photo at column 4.
	photos := []models.Photo{
		aspectPhoto("p0", models.AspectPortrait),
		aspectPhoto("p1", models.AspectPortrait),
		aspectPhoto("p2", models.AspectSquare),
		aspectPhoto("p3", models.AspectPortrait),
		aspectPhoto("p4", models.AspectPortrait),
		aspectPhoto("wide", models.AspectLandscape),
	}

	balanced := gallery.BalanceGrid(photos)
	require.Len(t, balanced, 6)
	assert.Equal(t, "wide", balanced[4].ID)
	assert.Equal(t, "p4", balanced[5].ID)
}

func TestBalanceGrid_PreservesMultiset(t *testing.T) {
	photos := []models.Photo{
		aspectPhoto("a", models.AspectLandscape),
		aspectPhoto("b", models.AspectPortrait),
		aspectPhoto("c", models.AspectPortrait),
		aspectPhoto("d", models.AspectLandscape),
		aspectPhoto("e", models.AspectSquare),
		aspectPhoto("f", models.AspectPortrait),
		aspectPhoto("g", models.AspectLandscape),
		aspectPhoto("h", models.AspectPortrait),
	}

	balanced := gallery.BalanceGrid(photos)
	ids := func(ps []models.Photo) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}
	assert.ElementsMatch(t, ids(photos), ids(balanced))
}

func TestBalanceGrid_IsAFixedPoint(t *testing.T) {
	photos := []models.Photo{
		aspectPhoto("a", models.AspectPortrait),
		aspectPhoto("b", models.AspectLandscape),
		aspectPhoto("c", models.AspectPortrait),
		aspectPhoto("d", models.AspectSquare),
		aspectPhoto("e", models.AspectLandscape),
		aspectPhoto("f", models.AspectPortrait),
		aspectPhoto("g", models.AspectPortrait),
	}

	once := gallery.BalanceGrid(photos)
	twice := gallery.BalanceGrid(once)
	assert.Equal(t, once, twice, "rebalancing a balanced sequence must not move anything")
}

func TestBalanceGrid_ShortInputsUntouched(t *testing.T) {
	assert.Empty(t, gallery.BalanceGrid(nil))

	single := []models.Photo{aspectPhoto("a", models.AspectLandscape)}
	assert.Equal(t, single, gallery.BalanceGrid(single))
}

func TestBalanceGrid_DoesNotMutateInput(t *testing.T) {
	photos := []models.Photo{
		aspectPhoto("p0", models.AspectPortrait),
		aspectPhoto("p1", models.AspectPortrait),
		aspectPhoto("p2", models.AspectPortrait),
		aspectPhoto("p3", models.AspectPortrait),
		aspectPhoto("p4", models.AspectPortrait),
		aspectPhoto("wide", models.AspectLandscape),
	}
	gallery.BalanceGrid(photos)
	assert.Equal(t, "p4", photos[4].ID)
	assert.Equal(t, "wide", photos[5].ID)
}
