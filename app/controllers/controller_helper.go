package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
)

var engine *gallery.Engine

// Setup injects the gallery engine all handlers operate on.
func Setup(e *gallery.Engine) {
	engine = e
}

// GetEngine returns the injected engine; handlers fail loudly when wiring
// was skipped.
func GetEngine() *gallery.Engine {
	if engine == nil {
		panic("controllers: gallery engine not initialized, call controllers.Setup first")
	}
	return engine
}

// jsonError renders the shared error shape with the status matching the
// failure class.
func jsonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	label := "internal_error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, label = fiber.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, label = fiber.StatusBadRequest, "validation_failed"
	case errors.Is(err, apperrors.ErrUploadRejected):
		status, label = fiber.StatusUnprocessableEntity, "upload_rejected"
	case errors.Is(err, apperrors.ErrConfigurationMissing):
		status, label = fiber.StatusInternalServerError, "configuration_missing"
	case errors.Is(err, apperrors.ErrRemoteUnavailable):
		status, label = fiber.StatusBadGateway, "remote_unavailable"
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   label,
		"message": err.Error(),
	})
}
