package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/viewmodel"
)

// HandleListPhotos serves the searchable, paginated, layout-balanced photo
// grid. Filtering runs before sorting, balancing and pagination. Scoping to
// an album switches to the chronological (oldest first) ordering.
func HandleListPhotos(c *fiber.Ctx) error {
	e := GetEngine()

	query := c.Query("q")
	albumID := c.Query("album")
	page := c.QueryInt("page", 1)
	viewport := c.QueryInt("viewport", 1280)
	dpr := parseFloatQuery(c, "dpr", 1)

	photos := e.Photos()
	albums := e.Albums()

	if albumID != "" {
		scoped := make([]models.Photo, 0, len(photos))
		for _, p := range photos {
			if p.AlbumID == albumID {
				scoped = append(scoped, p)
			}
		}
		photos = scoped
	}

	filtered := gallery.FilterPhotos(photos, albums, query)

	if albumID != "" {
		filtered = gallery.SortChronological(filtered)
	} else {
		filtered = gallery.SortByRecency(filtered)
	}
	balanced := gallery.BalanceGrid(filtered)

	totalPages := gallery.TotalPages(len(balanced))
	page = gallery.ClampPage(page, totalPages)
	pageItems := gallery.Paginate(balanced, page)

	return c.JSON(fiber.Map{
		"photos":      viewmodel.NewPhotoViews(pageItems, viewport, dpr),
		"total":       len(balanced),
		"page":        page,
		"total_pages": totalPages,
		"page_window": gallery.PageWindow(page, totalPages),
	})
}

// HandleRecentPhotos serves the home carousel: the newest photos by best
// date, unpaginated but capped.
func HandleRecentPhotos(c *fiber.Ctx) error {
	e := GetEngine()

	limit := c.QueryInt("limit", 10)
	viewport := c.QueryInt("viewport", 1280)
	dpr := parseFloatQuery(c, "dpr", 1)

	recent := gallery.SortByRecency(e.Photos())
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	return c.JSON(fiber.Map{
		"photos": viewmodel.NewPhotoViews(recent, viewport, dpr),
	})
}

// HandleUpdatePhoto applies a partial photo update (title, album).
func HandleUpdatePhoto(c *fiber.Ctx) error {
	var patch models.PhotoPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	if err := GetEngine().UpdatePhotoDetails(c.Context(), c.Params("id"), patch); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleDeletePhoto deletes a photo and cleans up its album if that emptied
// it.
func HandleDeletePhoto(c *fiber.Ctx) error {
	if err := GetEngine().DeletePhotoItem(c.Context(), c.Params("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseFloatQuery(c *fiber.Ctx, key string, def float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
