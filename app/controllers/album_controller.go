package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
)

var validate = validator.New()

// HandleListAlbums serves album statistics grouped by theme for the album
// overview page.
func HandleListAlbums(c *fiber.Ctx) error {
	e := GetEngine()

	stats := gallery.AlbumsWithStats(e.Photos(), e.Albums())
	return c.JSON(fiber.Map{
		"albums": stats,
		"groups": gallery.GroupByTheme(stats),
	})
}

// CreateAlbumRequest is the payload for album creation.
type CreateAlbumRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Theme       string `json:"theme" validate:"max=255"`
}

// HandleCreateAlbum creates a new album.
func HandleCreateAlbum(c *fiber.Ctx) error {
	var req CreateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, apperrors.ValidationFailedf("%v", err))
	}

	album, err := GetEngine().CreateAlbum(c.Context(), req.Name, req.Description, req.Theme)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(album)
}

// UpdateAlbumRequest is the payload for a partial album update. OldTheme
// must carry the previous theme name when the patch renames the theme, so
// the rename can cascade to sibling albums.
type UpdateAlbumRequest struct {
	models.AlbumPatch
	OldTheme string `json:"old_theme"`
}

// HandleUpdateAlbum applies a partial update, cascading theme renames.
func HandleUpdateAlbum(c *fiber.Ctx) error {
	var req UpdateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	if err := GetEngine().UpdateAlbum(c.Context(), c.Params("id"), req.AlbumPatch, req.OldTheme); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleDeleteAlbum deletes an album and detaches its photos.
func HandleDeleteAlbum(c *fiber.Ctx) error {
	if err := GetEngine().DeleteAlbumItem(c.Context(), c.Params("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// TransferRequest is the payload for moving all photos between albums.
type TransferRequest struct {
	TargetAlbumID     string `json:"target_album_id" validate:"required"`
	DeleteSourceAfter bool   `json:"delete_source_after"`
}

// HandleTransferAlbum bulk-moves every photo of the album to the target.
func HandleTransferAlbum(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, apperrors.ValidationFailedf("%v", err))
	}

	if err := GetEngine().TransferAlbumPhotos(c.Context(), c.Params("id"), req.TargetAlbumID, req.DeleteSourceAfter); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
