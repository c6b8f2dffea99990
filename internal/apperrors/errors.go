package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail indicates that an account with the given email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken indicates a token with a bad signature, wrong secret, or
// corrupted structure.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired indicates a structurally valid token past its expiry.
var ErrTokenExpired = errors.New("token expired")

// ErrRefreshTokenInvalid indicates a refresh token that has no matching row,
// was already revoked (replay), or is past its stored expiry.
var ErrRefreshTokenInvalid = errors.New("refresh token not found or revoked")

// ErrMissingProfileField indicates an OAuth provider profile without the
// fields required to establish an account.
var ErrMissingProfileField = errors.New("missing required profile field")

// ErrUnauthenticated indicates a request with no usable principal.
var ErrUnauthenticated = errors.New("unauthenticated")
