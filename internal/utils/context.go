// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, JWT token generation and validation, and other
// common operations.
package utils

import (
	"context"

	"github.com/murvyn/todo-app/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthUserCtxKey is the key used to store the authenticated identity in the
// context. Used together with GetAuthUserFromContext for type-safe retrieval
// of the identity from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AuthUserCtxKey, models.AuthUser{ID: id, Email: email})
var AuthUserCtxKey = contextKey("authUser")

// GetAuthUserFromContext retrieves the authenticated identity from the context.
//
// Returns the identity and an ok flag:
//   - ok == true: value is found and has the correct models.AuthUser type
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	user, ok := utils.GetAuthUserFromContext(ctx)
//	if !ok {
//	    // handle missing identity in context
//	}
func GetAuthUserFromContext(ctx context.Context) (models.AuthUser, bool) {
	user, ok := ctx.Value(AuthUserCtxKey).(models.AuthUser)
	return user, ok
}
