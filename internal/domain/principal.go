package domain

// Principal identifies the caller admitted by a guard. It is attached to the
// request context for the lifetime of a single request and never persisted.
type Principal struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
