package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimmerpics/glimmer/internal/pkg/middleware"
	"github.com/glimmerpics/glimmer/internal/pkg/session"
	"github.com/glimmerpics/glimmer/internal/pkg/usercontext"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	session.UseStore(fibersession.New(fibersession.Config{
		KeyLookup: "cookie:session_id",
	}))

	app := fiber.New()
	app.Use(middleware.EditorContextMiddleware)

	app.Post("/signin", func(c *fiber.Ctx) error {
		return session.SetSessionValue(c, usercontext.SessionKeyEmail, "editor@example.com")
	})
	app.Get("/auth/session", func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetEditorContext(c))
	})
	app.Get("/auth/google", func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetEditorContext(c))
	})
	return app
}

func sessionInfo(t *testing.T, app *fiber.App, path string, cookies []string) usercontext.EditorContext {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var ec usercontext.EditorContext
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ec))
	return ec
}

func TestSessionEndpointSeesSignedInEditor(t *testing.T) {
	app := newAuthTestApp(t)

	signin := httptest.NewRequest("POST", "/signin", nil)
	resp, err := app.Test(signin)
	require.NoError(t, err)
	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies, "sign-in must issue a session cookie")

	ec := sessionInfo(t, app, "/auth/session", cookies)
	assert.True(t, ec.IsEditor)
	assert.Equal(t, "editor@example.com", ec.Email)
}

func TestSessionEndpointAnonymousWithoutCookie(t *testing.T) {
	app := newAuthTestApp(t)

	ec := sessionInfo(t, app, "/auth/session", nil)
	assert.False(t, ec.IsEditor)
	assert.Equal(t, "", ec.Email)
}

func TestOAuthFlowRoutesStaySkipped(t *testing.T) {
	app := newAuthTestApp(t)

	signin := httptest.NewRequest("POST", "/signin", nil)
	resp, err := app.Test(signin)
	require.NoError(t, err)
	cookies := resp.Header.Values("Set-Cookie")

	// Even a signed-in editor gets no context on provider-flow routes.
	ec := sessionInfo(t, app, "/auth/google", cookies)
	assert.False(t, ec.IsEditor)
}
