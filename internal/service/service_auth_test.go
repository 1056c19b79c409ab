package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murvyn/todo-app/internal/config"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/mail"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTKey   = "test-jwt-private-key"
	testIssuer   = "todo-app-test"
	testFrontend = "https://todo.example.com"
)

type mockUserRepository struct {
	createUser      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmail func(ctx context.Context, email string) (models.User, error)
	findUserByID    func(ctx context.Context, id string) (models.User, error)
	updatePassword  func(ctx context.Context, id string, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUser(ctx, user)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmail(ctx, email)
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return m.findUserByID(ctx, id)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return m.updatePassword(ctx, id, passwordHash)
}

type mockMailer struct {
	send func(ctx context.Context, to, subject, htmlBody string) error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	return m.send(ctx, to, subject, htmlBody)
}

// memoryUserRepository keeps a single user in memory so flows that read the
// password hash back after a write (the reset flow) behave like the real store.
type memoryUserRepository struct {
	user models.User
}

func (m *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	m.user = user
	return user, nil
}

func (m *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.user.Email != email {
		return models.User{}, store.ErrUserNotFound
	}
	return m.user, nil
}

func (m *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if m.user.ID != id {
		return models.User{}, store.ErrUserNotFound
	}
	return m.user, nil
}

func (m *memoryUserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	if m.user.ID != id {
		return store.ErrUserNotFound
	}
	m.user.PasswordHash = passwordHash
	return nil
}

func newTestAuthService(repo store.UserRepository, mailer mail.Mailer) AuthService {
	return NewAuthService(repo, mailer, config.Auth{
		JWTPrivateKey: testJWTKey,
		TokenIssuer:   testIssuer,
	}, testFrontend, logger.Nop())
}

// ─── RegisterUser ────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser(t *testing.T) {
	repo := &mockUserRepository{
		createUser: func(ctx context.Context, user models.User) (models.User, error) {
			return user, nil
		},
	}
	svc := newTestAuthService(repo, nil)

	user, err := svc.RegisterUser(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, utils.VerifyPassword("secret1", user.PasswordHash))
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.RegisterUser(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createUser: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo, nil)

	_, err := svc.RegisterUser(context.Background(), "a@x.com", "secret1")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ─── Login ───────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			require.Equal(t, "a@x.com", email)
			return models.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo, nil)

	user, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo, nil)

	_, err = svc.Login(context.Background(), "a@x.com", "secret2")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := newTestAuthService(repo, nil)

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─── Session tokens ──────────────────────────────────────────────────────────

func TestAuthService_SessionTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)
	user := models.User{ID: "user-1", Email: "a@x.com"}

	token, err := svc.CreateSessionToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseSessionToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "a@x.com", parsed.Email)
}

func TestAuthService_ParseSessionToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.ParseSessionToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseSessionToken_Expired(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	now := time.Now()
	claims := models.TokenClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTKey))
	require.NoError(t, err)

	_, err = svc.ParseSessionToken(context.Background(), expired)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_NoSigningKey(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, nil, config.Auth{
		TokenIssuer: testIssuer,
	}, testFrontend, logger.Nop())

	_, err := svc.CreateSessionToken(context.Background(), models.User{ID: "user-1", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrNoSigningKey)

	_, err = svc.ParseSessionToken(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

// ─── ForgotPassword ──────────────────────────────────────────────────────────

func TestAuthService_ForgotPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}

	var sentTo, sentBody string
	mailer := &mockMailer{
		send: func(ctx context.Context, to, subject, htmlBody string) error {
			sentTo = to
			sentBody = htmlBody
			assert.Equal(t, "Reset Password", subject)
			return nil
		},
	}
	svc := newTestAuthService(repo, mailer)

	err = svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", sentTo)
	assert.Contains(t, sentBody, testFrontend+"/reset-password?userId=user-1&token=")

	// the mailed token must verify against the hash it was issued for
	tokenString := extractResetToken(t, sentBody)
	parsed, err := utils.ValidateResetToken(tokenString, hash, testJWTKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := newTestAuthService(repo, &mockMailer{
		send: func(ctx context.Context, to, subject, htmlBody string) error {
			t.Fatal("no mail must be sent for an unknown email")
			return nil
		},
	})

	err := svc.ForgotPassword(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_ForgotPassword_MailFailure(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmail: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	mailer := &mockMailer{
		send: func(ctx context.Context, to, subject, htmlBody string) error {
			return errors.New("smtp: connection refused")
		},
	}
	svc := newTestAuthService(repo, mailer)

	err = svc.ForgotPassword(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrMailDeliveryFailed)
}

func TestAuthService_ForgotPassword_EmptyEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	err := svc.ForgotPassword(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─── ValidateResetToken / ResetPassword ──────────────────────────────────────

func TestAuthService_ValidateResetToken(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com", PasswordHash: hash}}
	svc := newTestAuthService(repo, nil)

	token, err := utils.GenerateResetToken(testIssuer, "user-1", "a@x.com", hash, testJWTKey)
	require.NoError(t, err)

	identity, err := svc.ValidateResetToken(context.Background(), "user-1", token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestAuthService_ValidateResetToken_UnknownUser(t *testing.T) {
	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com", PasswordHash: "hash"}}
	svc := newTestAuthService(repo, nil)

	_, err := svc.ValidateResetToken(context.Background(), "user-2", "token")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_ValidateResetToken_EmptyParams(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.ValidateResetToken(context.Background(), "", "token")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ValidateResetToken(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// A token issued against an old password hash must stop verifying the moment
// the hash changes, whether the change came from the reset itself or from
// anywhere else.
func TestAuthService_ValidateResetToken_AfterOutOfBandPasswordChange(t *testing.T) {
	oldHash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com", PasswordHash: oldHash}}
	svc := newTestAuthService(repo, nil)

	token, err := utils.GenerateResetToken(testIssuer, "user-1", "a@x.com", oldHash, testJWTKey)
	require.NoError(t, err)

	newHash, err := utils.HashPassword("secret2")
	require.NoError(t, err)
	require.NoError(t, repo.UpdatePassword(context.Background(), "user-1", newHash))

	_, err = svc.ValidateResetToken(context.Background(), "user-1", token.SignedString)
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com", PasswordHash: hash}}
	svc := newTestAuthService(repo, nil)

	token, err := utils.GenerateResetToken(testIssuer, "user-1", "a@x.com", hash, testJWTKey)
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), "user-1", token.SignedString, "secret2")
	require.NoError(t, err)

	assert.True(t, utils.VerifyPassword("secret2", repo.user.PasswordHash))
	assert.False(t, utils.VerifyPassword("secret1", repo.user.PasswordHash))
}

func TestAuthService_ResetPassword_ReplayFails(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com", PasswordHash: hash}}
	svc := newTestAuthService(repo, nil)

	token, err := utils.GenerateResetToken(testIssuer, "user-1", "a@x.com", hash, testJWTKey)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), "user-1", token.SignedString, "secret2"))

	// a spent token was signed against a hash that no longer exists
	err = svc.ResetPassword(context.Background(), "user-1", token.SignedString, "secret3")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
	assert.True(t, utils.VerifyPassword("secret2", repo.user.PasswordHash))
}

func TestAuthService_ResetPassword_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	err := svc.ResetPassword(context.Background(), "user-1", "token", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─── GetUserByID ─────────────────────────────────────────────────────────────

func TestAuthService_GetUserByID(t *testing.T) {
	repo := &memoryUserRepository{user: models.User{ID: "user-1", Email: "a@x.com"}}
	svc := newTestAuthService(repo, nil)

	user, err := svc.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.GetUserByID(context.Background(), "user-2")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// extractResetToken pulls the token query parameter out of the mailed link.
func extractResetToken(t *testing.T, body string) string {
	t.Helper()

	marker := "&token="
	start := strings.Index(body, marker)
	require.GreaterOrEqual(t, start, 0, "mail body must contain a reset link: %s", body)

	rest := body[start+len(marker):]
	end := strings.IndexAny(rest, `"<> `)
	require.GreaterOrEqual(t, end, 0, "reset link must be delimited in the mail body")

	token := rest[:end]
	require.NotEmpty(t, token)
	return token
}
