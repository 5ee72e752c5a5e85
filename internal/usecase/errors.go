package usecase

import (
	"fmt"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
)

// DomainError is a user-correctable failure: the handler maps it to a 400
// with a localized message and never leaks internals.
type DomainError struct {
	Code       string
	MessageKey i18n.Key
}

func (e *DomainError) Error() string {
	return e.Code
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an unexpected server-side failure, mapped to a 500 with a
// generic localized message.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ValidationError reports which constraint a single field failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
