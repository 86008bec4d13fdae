package domain

import "errors"

// Sentinel errors shared across the dashboard packages. Callers wrap these
// so the CLI and the gateway can classify failures without importing the
// packages that produced them.
//
//	return fmt.Errorf("load lifecycle: %w", domain.ErrOrganizationNotFound)
var (
	// ErrOrganizationNotFound indicates no organization id is available, so
	// no fetch cycle may be started.
	ErrOrganizationNotFound = errors.New("Organization ID not found")

	// ErrUnknownTab indicates a dashboard tab name that is not registered.
	ErrUnknownTab = errors.New("unknown dashboard tab")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the analytics backend throttled the request.
	ErrRateLimited = errors.New("rate limited")
)
