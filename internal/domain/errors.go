package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested record does not exist
	ErrItemNotFound = errors.New("library item not found")

	// ErrServerUnreachable indicates the nutrition API is unreachable
	ErrServerUnreachable = errors.New("nutrition server is unreachable")

	// ErrAuthFailed indicates the API token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNoOwner indicates a call was made without a configured owner
	ErrNoOwner = errors.New("no owner configured")
)
