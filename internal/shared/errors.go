package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrOAuthRejected      = fmt.Errorf("provider credential rejected")
	ErrRefreshFailed      = fmt.Errorf("token refresh failed")

	// Request pipeline errors
	ErrNetwork      = fmt.Errorf("network request failed")
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrForbidden    = fmt.Errorf("forbidden")
	ErrServer       = fmt.Errorf("server error")
	ErrValidation   = fmt.Errorf("request rejected")

	// API and service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrLocationNotFound   = fmt.Errorf("location not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
