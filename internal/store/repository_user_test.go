package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(createUser)).
		WithArgs("user-1", "a@x.com", "hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "a@x.com", "hash-1", createdAt))

	user, err := repo.CreateUser(context.Background(), models.User{ID: "user-1", Email: "a@x.com", PasswordHash: "hash-1"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID != "user-1" || user.Email != "a@x.com" {
		t.Errorf("unexpected user returned: %+v", user)
	}
	if !user.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", user.CreatedAt, createdAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(createUser)).
		WithArgs("user-2", "a@x.com", "hash-2").
		WillReturnError(uniqueViolation())

	_, err := repo.CreateUser(context.Background(), models.User{ID: "user-2", Email: "a@x.com", PasswordHash: "hash-2"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("CreateUser error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestUserRepository_FindUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "a@x.com", "hash-1", time.Now()))

	user, err := repo.FindUserByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("ID = %q, want %q", user.ID, "user-1")
	}
	if user.PasswordHash != "hash-1" {
		t.Errorf("PasswordHash = %q, want %q", user.PasswordHash, "hash-1")
	}
}

func TestUserRepository_FindUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUserByEmail error = %v, want ErrUserNotFound", err)
	}
}

// Exact-match lookup: an email differing only in case is a different account.
func TestUserRepository_FindUserByEmail_CaseSensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
		WithArgs("A@X.COM").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "A@X.COM")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUserByEmail error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_FindUserByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByID)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("user-1", "a@x.com", "hash-1", time.Now()))

	user, err := repo.FindUserByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", user.Email, "a@x.com")
	}
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByID)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUserByID error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(updateUserPassword)).
		WithArgs("user-1", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "user-1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(updateUserPassword)).
		WithArgs("ghost", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "ghost", "new-hash")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UpdatePassword error = %v, want ErrUserNotFound", err)
	}
}
