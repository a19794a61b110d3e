package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/internal/pkg/session"
	"github.com/glimmerpics/glimmer/internal/pkg/usercontext"
)

// EditorContextMiddleware resolves the per-request editor signal from the
// session and exposes it via Locals, so controllers never touch the session
// store directly.
func EditorContextMiddleware(c *fiber.Ctx) error {
	if skipsEditorContext(c.Path()) {
		return c.Next()
	}

	email := session.GetSessionValue(c, usercontext.SessionKeyEmail)
	c.Locals(usercontext.KeyEditorContext, usercontext.EditorContext{
		Email:    email,
		IsEditor: email != "",
	})
	return c.Next()
}

// skipsEditorContext reports whether the path belongs to the Goth OAuth flow.
// Goth uses its own fiber session store and relies on per-request locals, so
// touching the app session there would interfere with the handshake. Logout
// and the session-info endpoint are app routes and still need the editor
// signal resolved.
func skipsEditorContext(path string) bool {
	if !strings.HasPrefix(path, "/auth/") {
		return false
	}
	if strings.HasPrefix(path, "/auth/logout") || strings.HasPrefix(path, "/auth/session") {
		return false
	}
	return true
}
