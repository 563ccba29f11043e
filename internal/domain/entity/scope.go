package entity

// Scope is the request-scoped tenant context threaded through every operation.
// Handlers build it from the validated token; nothing below HTTP reads ambient state.
type Scope struct {
	OutletID string
	UserID   string
}
