package models

// MessageResponse is the minimal JSON body returned by endpoints that only
// report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by login and register. The token is delivered
// both here and in the "auth-x-token" cookie so browser clients can pick
// whichever transport suits them.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ResetProbeResponse is returned by the reset-link validation endpoint.
// User carries the decoded token payload so the client can gate rendering
// of the reset form.
type ResetProbeResponse struct {
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
}

// TodoResponse wraps a single todo item together with an outcome message.
type TodoResponse struct {
	Todo    Todo   `json:"todo"`
	Message string `json:"message"`
}

// TodoListResponse is a page of todos plus pagination metadata.
type TodoListResponse struct {
	Todos      []Todo `json:"todos"`
	TotalCount int64  `json:"totalCount"`
	HasMore    bool   `json:"hasMore"`
	Message    string `json:"message"`
}
