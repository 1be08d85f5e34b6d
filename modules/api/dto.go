package api

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToggleBody is the body for toggling a single user's completion.
// User is optional; it defaults to the caller's own name.
type ToggleBody struct {
	User string `json:"user"`
}
