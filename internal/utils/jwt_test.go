package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murvyn/todo-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "todo-app-test"
	testSignKey = "test-sign-key"
	testUserID  = "0192aefd-0000-7000-8000-000000000001"
	testEmail   = "a@x.com"
)

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUserID, testEmail, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateSessionToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, testEmail, parsed.Email)
}

func TestGenerateSessionToken_NoExpiryWhenDurationZero(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUserID, testEmail, 0, testSignKey)
	require.NoError(t, err)

	// tokens issued without a duration must carry no exp claim at all
	assert.Nil(t, token.ExpiresAt)

	parsed, err := ValidateSessionToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testUserID, parsed.UserID)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	_, err := GenerateSessionToken("", testUserID, testEmail, time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateSessionToken(testIssuer, "", testEmail, time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateSessionToken(testIssuer, testUserID, "", time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateSessionToken(testIssuer, testUserID, testEmail, time.Hour, "")
	assert.Error(t, err)
}

func TestValidateSessionToken_WrongKey(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUserID, testEmail, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_WrongIssuer(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUserID, testEmail, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token.SignedString, testSignKey, "someone-else")
	assert.Error(t, err)
}

func TestGenerateResetToken_RoundTrip(t *testing.T) {
	const passwordHash = "$2a$10$abcdefghijklmnopqrstuv"

	token, err := GenerateResetToken(testIssuer, testUserID, testEmail, passwordHash, testSignKey)
	require.NoError(t, err)
	require.NotNil(t, token.ExpiresAt)

	parsed, err := ValidateResetToken(token.SignedString, passwordHash, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, testEmail, parsed.Email)
}

// A reset token is keyed to the password hash it was issued against. Once
// the hash changes the derived key no longer exists and verification must
// fail, which is what makes the token single-use.
func TestValidateResetToken_FailsAfterPasswordChange(t *testing.T) {
	token, err := GenerateResetToken(testIssuer, testUserID, testEmail, "old-hash", testSignKey)
	require.NoError(t, err)

	_, err = ValidateResetToken(token.SignedString, "new-hash", testSignKey, testIssuer)
	require.Error(t, err)
	assert.False(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateResetToken_Expired(t *testing.T) {
	const passwordHash = "old-hash"

	// craft a token signed with the derived key but already past its expiry
	now := time.Now()
	claims := models.TokenClaims{
		Email: testEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-10 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey + passwordHash))
	require.NoError(t, err)

	_, err = ValidateResetToken(expired, passwordHash, testSignKey, testIssuer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateResetToken_EmptyHash(t *testing.T) {
	token, err := GenerateResetToken(testIssuer, testUserID, testEmail, "hash", testSignKey)
	require.NoError(t, err)

	_, err = ValidateResetToken(token.SignedString, "", testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_RejectsUnsignedToken(t *testing.T) {
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  testIssuer,
			Subject: testUserID,
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateSessionToken(unsigned, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_EmptySubject(t *testing.T) {
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: testIssuer,
		},
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ValidateSessionToken(noSubject, testSignKey, testIssuer)
	assert.Error(t, err)
}
