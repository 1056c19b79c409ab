package service

import (
	"context"
	"fmt"

	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

const (
	defaultTodoPage  = 1
	defaultTodoLimit = 20
)

// todoService is the concrete implementation of TodoService. All operations
// are scoped by the owner's user ID; the repository enforces the scoping at
// the SQL level.
type todoService struct {
	todoRepository store.TodoRepository
	idGenerator    *utils.UUIDGenerator
	logger         *logger.Logger
}

// NewTodoService constructs a TodoService wired to the given TodoRepository.
func NewTodoService(todoRepository store.TodoRepository, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		idGenerator:    utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// GetTodos returns one page of the user's todos, newest first. Page and
// limit fall back to 1 and 20 when non-positive, mirroring the query
// defaults of the HTTP layer.
func (s *todoService) GetTodos(ctx context.Context, userID string, page, limit int) (models.TodoPage, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = defaultTodoPage
	}
	if limit < 1 {
		limit = defaultTodoLimit
	}
	offset := (page - 1) * limit

	todos, totalCount, err := s.todoRepository.ListTodos(ctx, userID, uint64(limit), uint64(offset))
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("listing todos failed")
		return models.TodoPage{}, fmt.Errorf("listing todos failed: %w", err)
	}

	return models.TodoPage{
		Todos:      todos,
		TotalCount: totalCount,
		HasMore:    int64(offset+limit) < totalCount,
	}, nil
}

// CreateTodo validates and persists a new todo owned by userID.
// Returns ErrInvalidDataProvided when title or description is empty.
func (s *todoService) CreateTodo(ctx context.Context, userID, title, description string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	if title == "" || description == "" {
		log.Error().Str("user_id", userID).Msg("invalid todo data provided")
		return models.Todo{}, ErrInvalidDataProvided
	}

	todo := models.Todo{
		ID:          s.idGenerator.Generate(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	created, err := s.todoRepository.CreateTodo(ctx, todo)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("todo creation failed")
		return models.Todo{}, fmt.Errorf("todo creation failed: %w", err)
	}

	return created, nil
}

// UpdateTodo replaces the title and description of an existing todo.
// Returns ErrInvalidDataProvided on empty fields, store.ErrTodoNotFound
// (wrapped) when the todo does not exist or belongs to another user.
func (s *todoService) UpdateTodo(ctx context.Context, userID, todoID, title, description string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	if todoID == "" || title == "" || description == "" {
		log.Error().Str("user_id", userID).Msg("invalid todo data provided")
		return models.Todo{}, ErrInvalidDataProvided
	}

	updated, err := s.todoRepository.UpdateTodo(ctx, models.Todo{
		ID:          todoID,
		UserID:      userID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("todo_id", todoID).Msg("todo update failed")
		return models.Todo{}, fmt.Errorf("todo update failed: %w", err)
	}

	return updated, nil
}

// ToggleTodo flips the completion flag of the given todo.
func (s *todoService) ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	if todoID == "" {
		return models.Todo{}, ErrInvalidDataProvided
	}

	todo, err := s.todoRepository.FindTodoByID(ctx, todoID, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("todo_id", todoID).Msg("todo lookup failed")
		return models.Todo{}, fmt.Errorf("todo lookup failed: %w", err)
	}

	toggled, err := s.todoRepository.SetCompleted(ctx, todoID, userID, !todo.Completed)
	if err != nil {
		log.Err(err).Str("user_id", userID).Str("todo_id", todoID).Msg("todo toggle failed")
		return models.Todo{}, fmt.Errorf("todo toggle failed: %w", err)
	}

	return toggled, nil
}

// DeleteTodo removes the given todo.
func (s *todoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	log := logger.FromContext(ctx)

	if todoID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.todoRepository.DeleteTodo(ctx, todoID, userID); err != nil {
		log.Err(err).Str("user_id", userID).Str("todo_id", todoID).Msg("todo deletion failed")
		return fmt.Errorf("todo deletion failed: %w", err)
	}

	return nil
}
