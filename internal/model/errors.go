package model

import "errors"

// Common errors used across the application
var (
	// Request validation errors
	ErrInvalidParams = errors.New("missing or malformed network join parameters")

	// Flow errors
	ErrFlowNotFound      = errors.New("login flow not found")
	ErrMissingJoinParams = errors.New("join parameters lost between steps")

	// Identity errors
	ErrIdentityIncomplete = errors.New("identity provider returned insufficient profile data")

	// Guestbook errors
	ErrAppendFailed = errors.New("could not append join record after retries")
)
