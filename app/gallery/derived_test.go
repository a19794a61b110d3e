package gallery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/app/models"
)

func datedPhoto(id, albumID string, captured time.Time) models.Photo {
	p := photoFixture(id, albumID)
	p.CapturedAt = &captured
	return p
}

func TestAlbumsWithStats_YearRangeAndCount(t *testing.T) {
	albums := []models.Album{albumFixture("a1", "Alps", "Travel")}
	photos := []models.Photo{
		datedPhoto("p1", "a1", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
		datedPhoto("p2", "a1", time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC)),
		datedPhoto("p3", "a1", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := gallery.AlbumsWithStats(photos, albums)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].PhotoCount)
	require.NotNil(t, stats[0].YearRange)
	assert.Equal(t, 2021, stats[0].YearRange.Start)
	assert.Equal(t, 2023, stats[0].YearRange.End)
}

func TestAlbumsWithStats_EmptyAlbumSortsLast(t *testing.T) {
	albums := []models.Album{
		albumFixture("empty", "Zebra", ""),
		albumFixture("full", "Alps", ""),
	}
	photos := []models.Photo{
		datedPhoto("p1", "full", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := gallery.AlbumsWithStats(photos, albums)
	require.Len(t, stats, 2)
	assert.Equal(t, "full", stats[0].ID)
	assert.Equal(t, "empty", stats[1].ID)
	assert.Nil(t, stats[1].YearRange)
	assert.Equal(t, 0, stats[1].PhotoCount)
}

func TestAlbumsWithStats_SameYearTiesBreakByName(t *testing.T) {
	albums := []models.Album{
		albumFixture("b", "Beaches", ""),
		albumFixture("a", "Alps", ""),
	}
	when := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	photos := []models.Photo{
		datedPhoto("p1", "a", when),
		datedPhoto("p2", "b", when),
	}

	stats := gallery.AlbumsWithStats(photos, albums)
	assert.Equal(t, "Alps", stats[0].Name)
	assert.Equal(t, "Beaches", stats[1].Name)
}

func TestEffectiveCover_OverrideWins(t *testing.T) {
	album := albumFixture("a1", "Alps", "")
	album.CoverPhotoID = "old"
	albums := []models.Album{album}
	photos := []models.Photo{
		datedPhoto("old", "a1", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		datedPhoto("new", "a1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := gallery.AlbumsWithStats(photos, albums)
	assert.Contains(t, stats[0].CoverPhotoURL, "old")
}

func TestEffectiveCover_FallsBackToMostRecent(t *testing.T) {
	album := albumFixture("a1", "Alps", "")
	album.CoverPhotoID = "gone" // points at a photo no longer in the album
	albums := []models.Album{album}
	photos := []models.Photo{
		datedPhoto("old", "a1", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		datedPhoto("new", "a1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := gallery.AlbumsWithStats(photos, albums)
	assert.Contains(t, stats[0].CoverPhotoURL, "new")
}

func TestGroupByTheme(t *testing.T) {
	travel1 := albumFixture("a1", "Alps", "Travel")
	travel2 := albumFixture("a2", "Beaches", "Travel")
	untagged := albumFixture("a3", "Misc", "")
	albums := []models.Album{travel1, untagged, travel2}
	photos := []models.Photo{
		datedPhoto("p1", "a1", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
		datedPhoto("p2", "a3", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	groups := gallery.GroupByTheme(gallery.AlbumsWithStats(photos, albums))
	require.Len(t, groups, 2)

	// Misc holds the newest photo, so its group leads.
	assert.Equal(t, gallery.UncategorizedTheme, groups[0].Theme)
	assert.Equal(t, "Travel", groups[1].Theme)
	assert.Len(t, groups[1].Albums, 2)
}

func TestSortByRecency_UsesCaptureDateOverUploadDate(t *testing.T) {
	older := photoFixture("uploaded-late", "")
	olderCapture := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	older.CapturedAt = &olderCapture
	older.UploadDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	newer := photoFixture("no-exif", "")
	newer.UploadDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sorted := gallery.SortByRecency([]models.Photo{older, newer})
	assert.Equal(t, "no-exif", sorted[0].ID)
	assert.Equal(t, "uploaded-late", sorted[1].ID)
}

func TestSortChronological(t *testing.T) {
	a := datedPhoto("a", "", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	b := datedPhoto("b", "", time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC))
	c := datedPhoto("c", "", time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC))

	sorted := gallery.SortChronological([]models.Photo{a, b, c})
	assert.Equal(t, []string{"b", "c", "a"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestFilterPhotos(t *testing.T) {
	lisbon := "Lisbon, Portugal"
	albums := []models.Album{albumFixture("a1", "Portugal Trip", "Travel")}

	byLocation := photoFixture("p1", "")
	byLocation.Title = "Sunset"
	byLocation.LocationName = &lisbon

	byAlbum := photoFixture("p2", "a1")
	byAlbum.Title = "Tram"

	byDate := datedPhoto("p3", "", time.Date(2023, 4, 12, 0, 0, 0, 0, time.UTC))
	byDate.Title = "Untitled"

	unrelated := photoFixture("p4", "")
	unrelated.Title = "Office"

	photos := []models.Photo{byLocation, byAlbum, byDate, unrelated}

	t.Run("matches location name", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "lisbon")
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("matches album name and theme", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "portugal")
		ids := make([]string, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		// Portugal matches the place name on p1 and the album on p2.
		assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
	})

	t.Run("matches formatted date", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "2023-04")
		require.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)
	})

	t.Run("case insensitive title match", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "SUNSET")
		require.Len(t, got, 1)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "   ")
		assert.Len(t, got, 4)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got := gallery.FilterPhotos(photos, albums, "antarctica")
		assert.Empty(t, got)
	})
}
