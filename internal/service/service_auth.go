package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murvyn/todo-app/internal/config"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/mail"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

const resetMailSubject = "Reset Password"

// authService is the concrete implementation of AuthService.
// It composes the user repository, the bcrypt password hasher, the JWT
// helpers, and the outbound mailer into the four authentication flows:
// register, login, forgot-password and reset-password.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers password-reset links. Delivery is awaited; a failure
	// is surfaced to the caller within the same request.
	mailer mail.Mailer

	// idGenerator assigns identifiers to newly created users.
	idGenerator *utils.UUIDGenerator

	// jwtPrivateKey is the process-wide secret used to sign and verify JWT
	// tokens. For reset tokens it is concatenated with the user's current
	// password hash. Read-only after construction.
	jwtPrivateKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session JWT remains
	// valid. Zero issues tokens without an "exp" claim.
	tokenDuration time.Duration

	// frontendURL is the public base URL the reset link points at.
	frontendURL string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and Mailer, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailer mail.Mailer, cfg config.Auth, frontendURL string, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		idGenerator:    utils.NewUUIDGenerator(),
		jwtPrivateKey:  cfg.JWTPrivateKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		frontendURL:    frontendURL,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both email and password are non-empty, bcrypt-hashes the
// password, and delegates persistence to the UserRepository.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           a.idGenerator.Generate(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both email and password are non-empty, looks up the
// account by email, and verifies the password against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrUserNotFound (wrapped) if no account matches the email.
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash) {
		log.Error().Str("id", foundUser.ID).Str("email", foundUser.Email).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateSessionToken issues a signed session JWT for the given user.
//
// The token is signed with the configured jwtPrivateKey, carries the
// configured tokenIssuer as the "iss" claim and the account email as a
// custom claim, and expires after tokenDuration (never, when zero).
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateSessionToken(ctx context.Context, user models.User) (models.Token, error) {
	if a.jwtPrivateKey == "" {
		return models.Token{}, ErrNoSigningKey
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, user.ID, user.Email, a.tokenDuration, a.jwtPrivateKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseSessionToken validates and parses a raw session JWT string.
//
// It delegates to utils.ValidateSessionToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors. A missing signing key is
// reported as ErrNoSigningKey instead, because then the failure says nothing
// about the token.
//
// Returns the decoded token model on success.
func (a *authService) ParseSessionToken(ctx context.Context, tokenString string) (models.Token, error) {
	if a.jwtPrivateKey == "" {
		return models.Token{}, ErrNoSigningKey
	}

	token, err := utils.ValidateSessionToken(tokenString, a.jwtPrivateKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetUserByID resolves a user id against the store. Failures are passed
// through so callers can match store.ErrUserNotFound with errors.Is.
func (a *authService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return a.userRepository.FindUserByID(ctx, id)
}

// ForgotPassword starts the password-reset flow for the given email.
//
// It issues a reset token keyed to the account's current password hash,
// builds the reset link against the configured frontend URL, and mails it.
// The mail send is awaited: a delivery failure fails the whole operation.
//
// Returns:
//   - ErrInvalidDataProvided if email is empty.
//   - store.ErrUserNotFound (wrapped) if no account matches the email.
//   - ErrNoSigningKey if the signing key is unset.
//   - ErrMailDeliveryFailed (wrapped) if the SMTP exchange fails.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("no email provided for password reset")
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if a.jwtPrivateKey == "" {
		return ErrNoSigningKey
	}

	token, err := utils.GenerateResetToken(a.tokenIssuer, user.ID, user.Email, user.PasswordHash, a.jwtPrivateKey)
	if err != nil {
		log.Err(err).Str("id", user.ID).Msg("reset token creation failed")
		return fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	link := fmt.Sprintf("%s/reset-password?userId=%s&token=%s", a.frontendURL, user.ID, token.SignedString)

	if err := a.mailer.Send(ctx, user.Email, resetMailSubject, resetMailBody(link)); err != nil {
		log.Err(err).Str("id", user.ID).Msg("reset mail delivery failed")
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}

	return nil
}

// ValidateResetToken checks a reset token against the referenced user's
// *current* password hash without mutating anything. It backs the
// link-validation probe the client calls before showing the reset form.
//
// Returns the identity decoded from the token, or:
//   - ErrInvalidDataProvided if userID or tokenString is empty.
//   - store.ErrUserNotFound (wrapped) if the user does not exist.
//   - ErrResetTokenExpired if the five-minute window has elapsed.
//   - ErrResetTokenInvalid for any other verification failure, including a
//     token issued against a password hash that has since changed.
func (a *authService) ValidateResetToken(ctx context.Context, userID, tokenString string) (models.AuthUser, error) {
	log := logger.FromContext(ctx)

	if userID == "" || tokenString == "" {
		log.Error().Msg("no user id or token provided for reset validation")
		return models.AuthUser{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("user search by id failed")
		return models.AuthUser{}, fmt.Errorf("user search by id failed: %w", err)
	}

	token, err := utils.ValidateResetToken(tokenString, user.PasswordHash, a.jwtPrivateKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("reset token validation failed")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.AuthUser{}, ErrResetTokenExpired
		}
		return models.AuthUser{}, ErrResetTokenInvalid
	}

	return models.AuthUser{ID: token.UserID, Email: token.Email}, nil
}

// ResetPassword completes the reset flow: it re-validates the token against
// the current password hash, bcrypt-hashes the new password and persists it.
//
// Because the token's signing key embeds the hash being replaced, a
// successful reset invalidates the token it was performed with; replaying it
// yields ErrResetTokenInvalid.
//
// Returns the same errors as ValidateResetToken, plus
// ErrInvalidDataProvided when newPassword is empty.
func (a *authService) ResetPassword(ctx context.Context, userID, tokenString, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		log.Error().Str("id", userID).Msg("no new password provided for reset")
		return ErrInvalidDataProvided
	}

	if _, err := a.ValidateResetToken(ctx, userID, tokenString); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// resetMailBody renders the HTML body of the reset email around the given link.
func resetMailBody(link string) string {
	return fmt.Sprintf(`
      <p>Hello,</p>
      <p>We received a request to reset the password for your account. Please click the link below to reset your password:</p>
      <a href="%s">Reset Password</a>
      <p>This link will expire in 5 minutes for security reasons. If you didn't request this password reset, you can safely ignore this email.</p>
      <p>Thank you,<br>Team</p>
    `, link)
}
