package utils

import (
	"context"
	"testing"

	"github.com/murvyn/todo-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuthUserFromContext(t *testing.T) {
	want := models.AuthUser{ID: "user-1", Email: "a@x.com"}
	ctx := context.WithValue(context.Background(), AuthUserCtxKey, want)

	got, ok := GetAuthUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetAuthUserFromContext_Missing(t *testing.T) {
	_, ok := GetAuthUserFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetAuthUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AuthUserCtxKey, "not-a-user")

	_, ok := GetAuthUserFromContext(ctx)
	assert.False(t, ok)
}
