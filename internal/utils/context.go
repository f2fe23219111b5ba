package utils

type contextKey string

// ContextSessionKey carries the resolved editor session through a request.
const ContextSessionKey contextKey = "editorSession"
