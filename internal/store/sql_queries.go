package store

import "github.com/Masterminds/squirrel"

const (
	createUser = `INSERT INTO users (id, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, email, password_hash, created_at;`

	findUserByEmail = `SELECT id, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, created_at
    FROM users
    WHERE id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2
    WHERE id = $1;`
)

// todoColumns is the canonical column list scanned into models.Todo.
var todoColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

// psql builds todo queries with PostgreSQL-style $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
