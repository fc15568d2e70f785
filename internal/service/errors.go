package service

import "errors"

// Sentinel errors shared across services. Handlers translate these to HTTP
// statuses; services never pick one themselves.
var (
	// ErrForbidden is the single uniform denial. Which predicate failed is
	// never disclosed.
	ErrForbidden = errors.New("forbidden")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCaseNotFound         = errors.New("case not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrMessageNotFound      = errors.New("message not found")

	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAPIKey      = errors.New("invalid api key")
)
