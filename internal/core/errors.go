package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrNoTargetProperty     = errors.New("no target property")
	ErrMissingCategory      = errors.New("missing category")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrUnexpectedCategory   = errors.New("category is only allowed on expenses")
	ErrInvalidMonth         = errors.New("invalid month")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrEmptyName            = errors.New("empty name")
	ErrInvalidPropertyType  = errors.New("invalid property type")
	ErrUnknownProperty      = errors.New("unknown property")
	ErrIncomeSingleProperty = errors.New("income must target exactly one property")
	ErrSingleTarget         = errors.New("update must target exactly one property")
	ErrInvalidSplitPolicy   = errors.New("invalid split policy")
	ErrDescriptionTooLong   = errors.New("description too long")
	ErrNameTooLong          = errors.New("name too long")
	ErrNotFound             = errors.New("not found")

	ErrAmountTooLarge   = fmt.Errorf("%w: exceeds maximum", ErrInvalidAmount)
	ErrAmountTooPrecise = fmt.Errorf("%w: too many decimal places", ErrInvalidAmount)
)

// ValidationError reports a rejected input field. It unwraps to one of the
// sentinel errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Err.Error()
	}
	return fmt.Sprintf("validation error: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid is shorthand for building a *ValidationError.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError is returned by stores when an id does not resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a *NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// PartialAllocationError is returned when a multi-property allocation
// persisted only some of its records. Created holds the ids that were
// committed, Missing the property ids that received no record.
type PartialAllocationError struct {
	Created []string
	Missing []string
	Err     error
}

func (e *PartialAllocationError) Error() string {
	return fmt.Sprintf("partial allocation: created %d record(s) [%s], missing properties [%s]: %v",
		len(e.Created), strings.Join(e.Created, ", "), strings.Join(e.Missing, ", "), e.Err)
}

func (e *PartialAllocationError) Unwrap() error { return e.Err }
