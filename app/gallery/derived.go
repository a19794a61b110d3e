package gallery

import (
	"sort"
	"strings"
	"time"

	"github.com/glimmerpics/glimmer/app/models"
)

// UncategorizedTheme is the display bucket albums without a theme fold into.
const UncategorizedTheme = "Uncategorized"

// YearRange spans the min and max year across an album's photos.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AlbumStats is an album together with everything derived from its photos.
type AlbumStats struct {
	models.Album
	PhotoCount      int        `json:"photo_count"`
	YearRange       *YearRange `json:"year_range,omitempty"`
	CoverPhotoURL   string     `json:"cover_photo_url,omitempty"`
	LatestPhotoDate time.Time  `json:"latest_photo_date,omitempty"`
}

// ThemeGroup is one displayed section of albums sharing a theme.
type ThemeGroup struct {
	Theme  string       `json:"theme"`
	Albums []AlbumStats `json:"albums"`
}

// AlbumsWithStats derives per-album statistics and the effective cover photo
// from the raw collections, returning albums in global display order:
// latest year descending (empty albums last), then name ascending.
func AlbumsWithStats(photos []models.Photo, albums []models.Album) []AlbumStats {
	byAlbum := make(map[string][]models.Photo)
	for _, p := range photos {
		if p.AlbumID != "" {
			byAlbum[p.AlbumID] = append(byAlbum[p.AlbumID], p)
		}
	}

	stats := make([]AlbumStats, 0, len(albums))
	for _, album := range albums {
		members := byAlbum[album.ID]
		s := AlbumStats{Album: album, PhotoCount: len(members)}

		for _, p := range members {
			year := p.BestDate().Year()
			if s.YearRange == nil {
				s.YearRange = &YearRange{Start: year, End: year}
			} else {
				if year < s.YearRange.Start {
					s.YearRange.Start = year
				}
				if year > s.YearRange.End {
					s.YearRange.End = year
				}
			}
			if p.BestDate().After(s.LatestPhotoDate) {
				s.LatestPhotoDate = p.BestDate()
			}
		}

		s.CoverPhotoURL = effectiveCoverURL(album, members)
		stats = append(stats, s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		iEnd, jEnd := 0, 0
		if stats[i].YearRange != nil {
			iEnd = stats[i].YearRange.End
		}
		if stats[j].YearRange != nil {
			jEnd = stats[j].YearRange.End
		}
		if iEnd != jEnd {
			return iEnd > jEnd
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// effectiveCoverURL applies the cover rule: an explicit coverPhotoId override
// matched by id wins; the fallback is the most recent member photo by
// best-known date.
func effectiveCoverURL(album models.Album, members []models.Photo) string {
	if album.CoverPhotoID != "" {
		for _, p := range members {
			if p.ID == album.CoverPhotoID {
				return p.URL
			}
		}
	}

	var cover models.Photo
	for _, p := range members {
		if cover.ID == "" || p.BestDate().After(cover.BestDate()) {
			cover = p
		}
	}
	return cover.URL
}

// GroupByTheme partitions album stats into displayed theme sections, ordered
// by the most recent photo date across each section's albums.
func GroupByTheme(stats []AlbumStats) []ThemeGroup {
	order := []string{}
	buckets := make(map[string][]AlbumStats)
	for _, s := range stats {
		theme := s.Theme
		if theme == "" {
			theme = UncategorizedTheme
		}
		if _, ok := buckets[theme]; !ok {
			order = append(order, theme)
		}
		buckets[theme] = append(buckets[theme], s)
	}

	groups := make([]ThemeGroup, 0, len(order))
	for _, theme := range order {
		groups = append(groups, ThemeGroup{Theme: theme, Albums: buckets[theme]})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return latestIn(groups[i]).After(latestIn(groups[j]))
	})
	return groups
}

func latestIn(g ThemeGroup) time.Time {
	var latest time.Time
	for _, a := range g.Albums {
		if a.LatestPhotoDate.After(latest) {
			latest = a.LatestPhotoDate
		}
	}
	return latest
}

// SortByRecency returns a copy sorted newest first, for home and grid
// contexts.
func SortByRecency(photos []models.Photo) []models.Photo {
	out := append([]models.Photo(nil), photos...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BestDate().After(out[j].BestDate())
	})
	return out
}

// SortChronological returns a copy sorted oldest first, the album-detail
// convention for telling a story in order.
func SortChronological(photos []models.Photo) []models.Photo {
	out := append([]models.Photo(nil), photos...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BestDate().Before(out[j].BestDate())
	})
	return out
}

// FilterPhotos keeps photos whose title, place name, best date, album name
// or album theme contains the query, case-insensitively. An empty query
// matches everything. Runs before sorting, layout balancing and pagination.
func FilterPhotos(photos []models.Photo, albums []models.Album, query string) []models.Photo {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]models.Photo(nil), photos...)
	}

	albumByID := make(map[string]models.Album, len(albums))
	for _, a := range albums {
		albumByID[a.ID] = a
	}

	matched := []models.Photo{}
	for _, p := range photos {
		fields := []string{
			p.Title,
			p.BestDate().Format("2006-01-02"),
		}
		if p.LocationName != nil {
			fields = append(fields, *p.LocationName)
		}
		if album, ok := albumByID[p.AlbumID]; ok {
			fields = append(fields, album.Name, album.Theme)
		}

		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), query) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}
