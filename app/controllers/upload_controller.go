package controllers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
	"github.com/glimmerpics/glimmer/internal/pkg/upload"
)

// HandleUploadPhoto accepts one multipart image upload and runs the full
// upload pipeline.
func HandleUploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, apperrors.ValidationFailedf("file field is required"))
	}

	data, err := readMultipartFile(fileHeader.Open)
	if err != nil {
		return jsonError(c, apperrors.ValidationFailedf("could not read uploaded file"))
	}
	if _, err := upload.ValidateImageBySniff(fileHeader.Filename, sniffHead(data)); err != nil {
		return jsonError(c, apperrors.ValidationFailedf("%v", err))
	}

	title := c.FormValue("title")
	if title == "" {
		title = gallery.DefaultTitle(fileHeader.Filename)
	}

	photo, err := GetEngine().UploadPhoto(c.Context(), gallery.UploadRequest{
		File:    gallery.UploadFile{Name: fileHeader.Filename, Data: data},
		Title:   title,
		AlbumID: c.FormValue("album_id"),
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

// HandleBatchUpload accepts multiple files under the "files" key and uploads
// them in bounded concurrent groups. Files from completed groups stay
// uploaded even when a later group fails.
func HandleBatchUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return jsonError(c, apperrors.ValidationFailedf("could not parse multipart form"))
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return jsonError(c, apperrors.ValidationFailedf("no files uploaded (key 'files' missing or empty)"))
	}

	files := make([]gallery.UploadFile, 0, len(headers))
	for _, h := range headers {
		data, err := readMultipartFile(h.Open)
		if err != nil {
			return jsonError(c, apperrors.ValidationFailedf("could not read file %s", h.Filename))
		}
		if _, err := upload.ValidateImageBySniff(h.Filename, sniffHead(data)); err != nil {
			return jsonError(c, apperrors.ValidationFailedf("%s: %v", h.Filename, err))
		}
		files = append(files, gallery.UploadFile{Name: h.Filename, Data: data})
	}

	uploaded := 0
	err = GetEngine().BatchUploadPhotos(c.Context(), files, c.FormValue("album_id"), func(completed, total int) {
		uploaded = completed
		log.Infof("[Upload] Batch progress %d/%d", completed, total)
	})
	if err != nil {
		// Completed groups stay uploaded; report how far we got.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "batch_failed",
			"message":  err.Error(),
			"uploaded": uploaded,
			"total":    len(files),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uploaded": uploaded,
		"total":    len(files),
	})
}

func readMultipartFile(open func() (multipart.File, error)) ([]byte, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func sniffHead(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
