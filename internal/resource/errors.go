package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotConfirmed is returned when the operator declines a delete.
	ErrNotConfirmed = errors.New("deletion not confirmed")
	// ErrBusy is returned when a mutation is already in flight on the controller.
	ErrBusy = errors.New("another change is still in progress")
	// ErrNotFound is returned when an identifier is not in the mirror.
	ErrNotFound = errors.New("record not found")
	// ErrDetached is returned when a result arrives for a view that is no longer mounted.
	ErrDetached = errors.New("view detached")
)

const networkNotice = "Could not connect to the server"

// FieldError describes one failed field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects local, pre-network draft failures.
type ValidationError struct {
	Fields []FieldError
}

// Add records a failure for field; the first message per field wins.
func (e *ValidationError) Add(field, message string) {
	for _, f := range e.Fields {
		if f.Field == field {
			return
		}
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Empty reports whether no failure was recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns field → message for inline rendering.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Field + " " + f.Message
	}
	return out
}

// ConflictError is a delete refused by the backend on a resource with dependents.
type ConflictError struct {
	Noun       string
	Dependents string
	Err        error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("Could not delete %s: it likely has dependent %s", e.Noun, e.Dependents)
	var gwErr *gateway.Error
	if errors.As(e.Err, &gwErr) && gwErr.Message() != "" {
		msg += " (" + gwErr.Message() + ")"
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return e.Err }

// Op names a controller operation for notices.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "save"
	OpDelete Op = "delete"
)

// notice converts any controller failure into a user-facing message.
func notice(op Op, noun, plural string, err error) string {
	if err == nil {
		return ""
	}
	var (
		ve       *ValidationError
		conflict *ConflictError
		gwErr    *gateway.Error
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &conflict):
		return conflict.Error()
	case errors.Is(err, ErrNotConfirmed):
		return "Deletion canceled"
	case errors.Is(err, ErrBusy):
		return "Another change is still in progress"
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("The %s no longer exists", noun)
	case errors.Is(err, ErrDetached):
		return "The view changed before the change finished; refresh to check"
	case gateway.IsNetwork(err):
		return networkNotice
	case errors.As(err, &gwErr) && gwErr.Message() != "":
		return gwErr.Message()
	}
	target := noun
	if op == OpLoad {
		target = plural
	}
	return fmt.Sprintf("Failed to %s %s", op, target)
}
