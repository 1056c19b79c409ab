package models

import "time"

// Todo is a single task item owned by exactly one user. Every query that
// touches a todo is scoped by UserID; ownership never changes.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// TodoPage is a single page of a user's todo list together with the
// metadata the client needs to drive infinite scrolling.
type TodoPage struct {
	Todos      []Todo `json:"todos"`
	TotalCount int64  `json:"totalCount"`
	HasMore    bool   `json:"hasMore"`
}
