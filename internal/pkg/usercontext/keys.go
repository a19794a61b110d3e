package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	KeyEditorContext = "EDITOR_CONTEXT"
	SessionKeyEmail  = "editor_email"
)
