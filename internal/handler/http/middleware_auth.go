// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/service"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// Per request it walks a fixed chain, rejecting at the first failure:
//
//  1. Extract the bearer token from the "Authorization" header; a missing
//     or malformed header rejects with 401.
//  2. Verify the token via [service.AuthService.ParseSessionToken]; an
//     invalid or expired token rejects with 401, except when the signing
//     key itself is unconfigured ([service.ErrNoSigningKey]), which is a
//     server fault and rejects with 500.
//  3. Resolve the decoded user ID against the user store; an unknown user
//     rejects with 401. Because session tokens may carry no expiry, this
//     per-request lookup is the only mechanism that ever invalidates a
//     stolen-but-valid token once the account is gone.
//  4. Attach the [models.AuthUser] identity to the request context under
//     [utils.AuthUserCtxKey] and delegate to the next handler.
//
// Nothing is cached between requests; every request re-verifies and
// re-resolves.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeMessage(w, "Authorization header missing or malformed", http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeMessage(w, "Authorization header missing or malformed", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseSessionToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoSigningKey):
				log.Err(err).Msg("jwt signing key is not configured")
				writeMessage(w, "Internal server error", http.StatusInternalServerError)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				writeMessage(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}
		}

		user, err := h.services.AuthService.GetUserByID(ctx, token.UserID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrUserNotFound):
				log.Err(err).Str("id", token.UserID).Msg("token subject no longer exists")
				writeMessage(w, "User not found", http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during user lookup")
				writeMessage(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.AuthUserCtxKey, models.AuthUser{ID: user.ID, Email: user.Email})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header does not consist of
//     exactly two space-separated parts or the scheme is not "Bearer".
//   - [ErrEmptyToken] if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
