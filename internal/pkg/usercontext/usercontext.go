package usercontext

import "github.com/gofiber/fiber/v2"

// EditorContext is the per-request identity signal. "Editor present" is the
// sole gate for mutating operations; the store's own access rules are the
// actual enforcement point.
type EditorContext struct {
	Email    string `json:"email"`
	IsEditor bool   `json:"is_editor"`
}

// GetEditorContext retrieves the editor context from fiber context.
// Returns an anonymous context if none is set.
func GetEditorContext(c *fiber.Ctx) EditorContext {
	if ctx := c.Locals(KeyEditorContext); ctx != nil {
		if ec, ok := ctx.(EditorContext); ok {
			return ec
		}
	}
	return EditorContext{}
}

// IsEditor checks if the current request carries a signed-in editor.
func IsEditor(c *fiber.Ctx) bool {
	return GetEditorContext(c).IsEditor
}
