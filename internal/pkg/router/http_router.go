package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/app/controllers"
	"github.com/glimmerpics/glimmer/internal/pkg/middleware"
	"github.com/glimmerpics/glimmer/internal/pkg/oauth"
	"github.com/glimmerpics/glimmer/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	session.NewSessionStore()
	oauth.Setup()

	app.Use(middleware.EditorContextMiddleware)

	// Identity routes: one federated method, one direct credential method.
	app.Post("/auth/login", controllers.HandleLogin)
	app.Get("/auth/:provider", controllers.HandleOAuthLogin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Post("/auth/logout", controllers.HandleLogout)
	app.Get("/auth/session", controllers.HandleSessionInfo)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
