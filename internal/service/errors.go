package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNoSigningKey indicates the process-wide JWT key is unset. Config
	// validation rejects this at startup, so seeing it at runtime means the
	// service was constructed by hand with a broken config. Handlers map it
	// to 500, never 401: the token may well be fine.
	ErrNoSigningKey = errors.New("jwt signing key is not configured")

	// ErrResetTokenExpired indicates the reset token's five-minute window
	// has elapsed.
	ErrResetTokenExpired = errors.New("reset token is expired")

	// ErrResetTokenInvalid indicates the reset token failed verification
	// against the user's current password hash. Covers forged tokens,
	// already-spent tokens, and tokens outlived by a password change.
	ErrResetTokenInvalid = errors.New("reset token is invalid")

	// ErrMailDeliveryFailed indicates the reset email could not be handed
	// to the SMTP server.
	ErrMailDeliveryFailed = errors.New("mail delivery failed")
)
