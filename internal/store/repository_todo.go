package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/models"
)

// todoRepository is the PostgreSQL-backed implementation of [TodoRepository].
//
// Every statement it issues carries a user_id predicate, so a caller can
// never read or mutate another user's todos: a foreign todo and a missing
// todo both surface as [ErrTodoNotFound].
type todoRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTodoRepository constructs a [TodoRepository] backed by the provided
// database connection and logger.
func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert(todo.TableName()).
		Columns("id", "user_id", "title", "description").
		Values(todo.ID, todo.UserID, todo.Title, todo.Description).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := r.scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Msg("error: insert failed")
		return models.Todo{}, err
	}

	return created, nil
}

// ListTodos returns one page of the user's todos ordered by creation time,
// newest first, together with the total number of todos the user owns.
// The count is issued as a second single-row query; both run on the request
// context so cancellation propagates.
func (r *todoRepository) ListTodos(ctx context.Context, userID string, limit, offset uint64) ([]models.Todo, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(todoColumns...).
		From(models.Todo{}.TableName()).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error: query failed")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0, limit)
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error: scanning error")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	countQuery, countArgs, err := psql.
		Select("COUNT(*)").
		From(models.Todo{}.TableName()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error: count failed")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return todos, totalCount, nil
}

func (r *todoRepository) FindTodoByID(ctx context.Context, todoID, userID string) (models.Todo, error) {
	query, args, err := psql.
		Select(todoColumns...).
		From(models.Todo{}.TableName()).
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanTodo(r.db.QueryRowContext(ctx, query, args...))
}

// UpdateTodo replaces the title and description of an existing todo and
// bumps updated_at.
func (r *todoRepository) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	query, args, err := psql.
		Update(todo.TableName()).
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": todo.ID, "user_id": todo.UserID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanTodo(r.db.QueryRowContext(ctx, query, args...))
}

// SetCompleted stores the given completion flag and bumps updated_at.
func (r *todoRepository) SetCompleted(ctx context.Context, todoID, userID string, completed bool) (models.Todo, error) {
	query, args, err := psql.
		Update(models.Todo{}.TableName()).
		Set("completed", completed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanTodo(r.db.QueryRowContext(ctx, query, args...))
}

func (r *todoRepository) DeleteTodo(ctx context.Context, todoID, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete(models.Todo{}.TableName()).
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.DeleteTodo").Msg("error: delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// scanTodo scans a single todo row, mapping an empty result set to
// [ErrTodoNotFound].
func (r *todoRepository) scanTodo(row *sql.Row) (models.Todo, error) {
	var todo models.Todo
	if err := row.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return todo, nil
}

func columnList() string {
	list := todoColumns[0]
	for _, column := range todoColumns[1:] {
		list += ", " + column
	}
	return list
}
