package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrNotInstalled       = errors.New("github app not installed")
	ErrCredentialsMissing = errors.New("github app credentials are not configured")
	ErrUpstream           = errors.New("github api error")
)

// NotInstalledError names the owner that has no App installation and where
// to install it.
type NotInstalledError struct {
	Owner      string
	InstallURL string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("GitHub App is not installed for %q. Install it at %s", e.Owner, e.InstallURL)
}

func (e *NotInstalledError) Is(target error) bool {
	return target == ErrNotInstalled
}

// Invalid wraps ErrValidation with a message meant for the client.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
