package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dias221467/Wellness_Tracker/internal/repository"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("concurrent update, try again")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already in use")
	ErrUsernameTaken       = errors.New("username already in use")
	ErrInsightsUnavailable = errors.New("insights are not configured")
)

// validationErrors collects field problems and reports them as one ErrInvalidInput.
type validationErrors []string

func (v *validationErrors) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v validationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(v, "; "))
}

// storeErr translates repository sentinels into service sentinels.
func storeErr(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
