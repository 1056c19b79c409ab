package service

import (
	"context"

	"github.com/murvyn/todo-app/models"
)

// AuthService orchestrates credential management and token lifecycle:
// registration, login, session tokens, and the password-reset flow.
type AuthService interface {
	// RegisterUser creates a new account from an email and a plaintext
	// password. The password is bcrypt-hashed before it reaches the store.
	RegisterUser(ctx context.Context, email, password string) (models.User, error)

	// Login verifies credentials and returns the stored user on success.
	Login(ctx context.Context, email, password string) (models.User, error)

	// CreateSessionToken issues a signed session JWT for the given user.
	CreateSessionToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseSessionToken validates a raw session token string and returns the
	// decoded token. Returns ErrNoSigningKey when the process has no signing
	// key configured, ErrTokenIsExpiredOrInvalid for every other failure.
	ParseSessionToken(ctx context.Context, tokenString string) (models.Token, error)

	// GetUserByID resolves a verified token subject against the user store.
	// The authorization middleware calls this on every request: since
	// session tokens may carry no expiry, the lookup is the only mechanism
	// that ever invalidates a token for a deleted user.
	GetUserByID(ctx context.Context, id string) (models.User, error)

	// ForgotPassword issues a reset token bound to the user's current
	// password hash and mails the reset link to the account email.
	ForgotPassword(ctx context.Context, email string) error

	// ValidateResetToken checks a reset token against the user's current
	// password hash without mutating anything. Returns the identity decoded
	// from the token on success.
	ValidateResetToken(ctx context.Context, userID, tokenString string) (models.AuthUser, error)

	// ResetPassword validates the reset token and, on success, persists the
	// bcrypt hash of the new password. A token spent this way can never be
	// replayed: the hash it was keyed to no longer exists.
	ResetPassword(ctx context.Context, userID, tokenString, newPassword string) error
}

// TodoService implements the owner-scoped todo operations. The userID
// argument always comes from the verified request identity, never from
// client input.
type TodoService interface {
	GetTodos(ctx context.Context, userID string, page, limit int) (models.TodoPage, error)
	CreateTodo(ctx context.Context, userID, title, description string) (models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID, title, description string) (models.Todo, error)
	ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
}
