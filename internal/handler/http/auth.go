package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/service"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

// authTokenCookie is the cookie carrying the session token. It is
// deliberately NOT HttpOnly: the browser client reads it from script. It is
// Secure and SameSite=None so it travels on cross-site requests over TLS.
const authTokenCookie = "auth-x-token"

// credentialsRequest is the JSON body of login and register.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// forgotPasswordRequest is the JSON body of forgot-password.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// resetPasswordRequest is the JSON body of the reset-password POST.
type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			writeMessage(w, "Email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Msg("user not found")
			writeMessage(w, "User not found. Would you like to create an account?", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("wrong password")
			writeMessage(w, "Invalid credentials", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			writeMessage(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateSessionToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeMessage(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{Message: "Login successful", Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			writeMessage(w, "Email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			writeMessage(w, "Email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			writeMessage(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateSessionToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeMessage(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{Message: "User registered successfully", Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("no email provided")
			writeMessage(w, "Email is required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Msg("user not found")
			writeMessage(w, "User not found. Would you like to create an account?", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during forgot password")
			writeMessage(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	writeMessage(w, "Password reset link sent", http.StatusOK)
}

// resetPasswordGet is the idempotent link-validation probe: it verifies the
// reset token against the user's current password hash without mutating
// anything, so the client can decide whether to show the reset form.
func (h *Handler) resetPasswordGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "id")
	token := chi.URLParam(r, "token")
	if userID == "" || token == "" {
		writeMessage(w, "Invalid id or token", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.ValidateResetToken(ctx, userID, token)
	if err != nil {
		h.writeResetError(w, log, err)
		return
	}

	utils.WriteJSON(w, models.ResetProbeResponse{Message: "Password reset link is valid", User: user}, http.StatusOK)
}

func (h *Handler) resetPasswordPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "id")
	token := chi.URLParam(r, "token")
	if userID == "" || token == "" {
		writeMessage(w, "Invalid id or token", http.StatusBadRequest)
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Password is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		writeMessage(w, "Password is required", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, userID, token, req.Password); err != nil {
		h.writeResetError(w, log, err)
		return
	}

	writeMessage(w, "Password reset successful", http.StatusOK)
}

// writeResetError maps reset-flow service errors onto HTTP responses. Both
// the GET probe and the POST mutation share the same mapping.
func (h *Handler) writeResetError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid reset request")
		writeMessage(w, "Invalid id or token", http.StatusBadRequest)
	case errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Msg("user not found")
		writeMessage(w, "User not found", http.StatusNotFound)
	case errors.Is(err, service.ErrResetTokenExpired), errors.Is(err, service.ErrResetTokenInvalid):
		log.Err(err).Msg("reset token rejected")
		writeMessage(w, "Invalid token", http.StatusUnauthorized)
	default:
		log.Err(err).Msg("unexpected error occurred during password reset")
		writeMessage(w, "Internal server error", http.StatusInternalServerError)
	}
}

// setAuthCookie delivers the session token as the auth-x-token cookie.
// The token is also returned in the response body; clients use whichever
// transport suits them.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
