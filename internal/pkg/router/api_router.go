package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/glimmerpics/glimmer/app/controllers"
	"github.com/glimmerpics/glimmer/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")

	// Read surface
	v1.Get("/photos", controllers.HandleListPhotos)
	v1.Get("/photos/recent", controllers.HandleRecentPhotos)
	v1.Get("/albums", controllers.HandleListAlbums)

	// Mutations require a signed-in editor
	v1.Post("/photos", middleware.RequireEditor, controllers.HandleUploadPhoto)
	v1.Post("/photos/batch", middleware.RequireEditor, controllers.HandleBatchUpload)
	v1.Patch("/photos/:id", middleware.RequireEditor, controllers.HandleUpdatePhoto)
	v1.Delete("/photos/:id", middleware.RequireEditor, controllers.HandleDeletePhoto)

	v1.Post("/albums", middleware.RequireEditor, controllers.HandleCreateAlbum)
	v1.Patch("/albums/:id", middleware.RequireEditor, controllers.HandleUpdateAlbum)
	v1.Delete("/albums/:id", middleware.RequireEditor, controllers.HandleDeleteAlbum)
	v1.Post("/albums/:id/transfer", middleware.RequireEditor, controllers.HandleTransferAlbum)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
