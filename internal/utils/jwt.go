package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murvyn/todo-app/models"
)

// ResetTokenDuration is the fixed lifetime of a password-reset token.
// Reset links expire five minutes after issuance.
const ResetTokenDuration = 5 * time.Minute

// GenerateSessionToken creates a signed HMAC-SHA256 JWT session token for
// the given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration, omitted entirely
//     when tokenDuration is zero
//   - email: the account email, so a verified token carries the full identity
//
// issuer, userID, email and signKey are required. tokenDuration may be zero,
// in which case the token never expires on its own; the per-request store
// lookup in the authorization middleware is then the only way a stolen token
// ever stops working.
//
// Returns an error if required parameters are empty or signing fails. A
// missing signKey is a deployment error: config validation rejects it at
// startup, so hitting that branch at runtime indicates the service was wired
// by hand.
func GenerateSessionToken(issuer, userID, email string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	return generateToken(issuer, userID, email, tokenDuration, signKey)
}

// GenerateResetToken creates a signed HMAC-SHA256 password-reset token.
//
// The signing key is the process-wide signKey concatenated with the user's
// current password hash. That couples token validity to the exact credential
// state at issuance: once the password changes (including via the reset the
// token authorizes), the derived key changes and the token stops verifying.
// This yields single-use semantics without a persisted revocation table.
//
// The token always expires after [ResetTokenDuration].
//
// Returns an error if issuer, userID, email, passwordHash or signKey is
// empty, or if signing fails.
func GenerateResetToken(issuer, userID, email, passwordHash, signKey string) (models.Token, error) {
	if passwordHash == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	return generateToken(issuer, userID, email, ResetTokenDuration, signKey+passwordHash)
}

func generateToken(issuer, userID, email string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || email == "" || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := models.TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, TokenClaims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateSessionToken validates the given session token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check, when the claim is present
//   - Subject (sub) claim presence
//
// Returns the parsed token (with UserID and Email populated) or an error if
// validation fails. Expired tokens satisfy errors.Is(err, jwt.ErrTokenExpired).
func ValidateSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	return validateToken(tokenString, tokenSignKey, tokenIssuer)
}

// ValidateResetToken validates a password-reset token against the user's
// *current* password hash.
//
// The verification key is recomputed as tokenSignKey+passwordHash at call
// time. A token issued before a password change, including a token that has
// already been spent on a successful reset, therefore fails signature
// verification, because the key it was signed with no longer exists.
//
// Returns the parsed token or an error. Expired tokens satisfy
// errors.Is(err, jwt.ErrTokenExpired); every other failure mode (bad
// signature, malformed token, wrong issuer) is indistinguishable.
func ValidateResetToken(tokenString, passwordHash, tokenSignKey, tokenIssuer string) (models.Token, error) {
	if passwordHash == "" {
		return models.Token{}, errors.New("empty password hash for reset token validation")
	}

	return validateToken(tokenString, tokenSignKey+passwordHash, tokenIssuer)
}

func validateToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	if tokenSignKey == "" {
		return models.Token{}, errors.New("empty sign key for token validation")
	}

	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userID == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	parsed.UserID = userID

	return *parsed, nil
}
