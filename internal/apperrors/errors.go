package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPersistence indicates that a backend read or write failed. When returned
// from a primary write, the operation was aborted with nothing applied.
var ErrPersistence = errors.New("persistence error")

// ErrPartialFailure indicates that the primary effect of an operation succeeded
// but a dependent step (secondary status write, audit write, document
// generation) did not. The primary effect is never rolled back.
var ErrPartialFailure = errors.New("partial failure")

// ErrForbidden indicates the user lacks permission for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
