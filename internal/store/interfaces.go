package store

import (
	"context"

	"github.com/murvyn/todo-app/models"
)

// UserRepository is the persistence boundary for user credential records.
// It is the only component allowed to read or mutate the users table;
// uniqueness of email and atomicity of password updates are delegated to
// the database's own constraints.
type UserRepository interface {
	// CreateUser persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks a user up by exact email match.
	// Returns ErrUserNotFound when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks a user up by primary key.
	// Returns ErrUserNotFound when no row matches.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// UpdatePassword replaces the stored password hash of the given user.
	// Returns ErrUserNotFound when the user does not exist.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// TodoRepository is the persistence boundary for todo items. Every method
// is scoped by the owning user's ID; a todo belonging to another user is
// indistinguishable from a missing one.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	ListTodos(ctx context.Context, userID string, limit, offset uint64) ([]models.Todo, int64, error)
	FindTodoByID(ctx context.Context, todoID, userID string) (models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	SetCompleted(ctx context.Context, todoID, userID string, completed bool) (models.Todo, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
}
