package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	gothfiber "github.com/shareed2k/goth_fiber"
	"golang.org/x/crypto/bcrypt"

	"github.com/glimmerpics/glimmer/internal/pkg/env"
	"github.com/glimmerpics/glimmer/internal/pkg/session"
	"github.com/glimmerpics/glimmer/internal/pkg/usercontext"
)

// LoginRequest is the direct-credential sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin signs an editor in with the provisioned email and password.
func HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	editorEmail := env.GetEnv("EDITOR_EMAIL", "")
	passwordHash := env.GetEnv("EDITOR_PASSWORD_HASH", "")
	if editorEmail == "" || passwordHash == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "configuration_missing",
			"message": "editor credentials are not provisioned",
		})
	}

	if !strings.EqualFold(req.Email, editorEmail) ||
		bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid email or password",
		})
	}

	if err := session.SetSessionValue(c, usercontext.SessionKeyEmail, editorEmail); err != nil {
		log.Errorf("[Auth] Failed to persist session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "could not establish session",
		})
	}

	return c.JSON(fiber.Map{"email": editorEmail, "is_editor": true})
}

// HandleOAuthLogin starts the federated sign-in flow for the provider named
// in the route.
func HandleOAuthLogin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the federated flow. Only allowlisted
// addresses become editors.
func HandleOAuthCallback(c *fiber.Ctx) error {
	user, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Errorf("[Auth] OAuth callback failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "federated sign-in failed",
		})
	}

	if !isAllowlistedEditor(user.Email) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "this account is not an editor",
		})
	}

	if err := session.SetSessionValue(c, usercontext.SessionKeyEmail, user.Email); err != nil {
		log.Errorf("[Auth] Failed to persist session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "could not establish session",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout tears the editor session down.
func HandleLogout(c *fiber.Ctx) error {
	if err := gothfiber.Logout(c); err != nil {
		log.Warnf("[Auth] OAuth logout: %v", err)
	}
	if err := session.DestroySession(c); err != nil {
		log.Warnf("[Auth] Session destroy: %v", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleSessionInfo reports the current editor signal for the UI.
func HandleSessionInfo(c *fiber.Ctx) error {
	return c.JSON(usercontext.GetEditorContext(c))
}

// isAllowlistedEditor checks a federated identity against the provisioned
// editor addresses.
func isAllowlistedEditor(email string) bool {
	if email == "" {
		return false
	}
	if strings.EqualFold(email, env.GetEnv("EDITOR_EMAIL", "")) {
		return true
	}
	for _, allowed := range strings.Split(env.GetEnv("EDITOR_EMAILS", ""), ",") {
		if allowed != "" && strings.EqualFold(email, strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}
