package homework

import (
	"errors"
	"fmt"
)

// ShapeKind tells which structural check failed.
type ShapeKind int

const (
	ShapeNotObject ShapeKind = iota + 1
	ShapeMissingKey
	ShapeNotList
	ShapeItemNotObject
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeNotObject:
		return "not_object"
	case ShapeMissingKey:
		return "missing_key"
	case ShapeNotList:
		return "not_list"
	case ShapeItemNotObject:
		return "item_not_object"
	default:
		return "unknown"
	}
}

var (
	ErrNotObject        = errors.New("response is not an object")
	ErrMissingHomeworks = errors.New("response has no " + KeyHomeworks + " key")
	ErrHomeworksNotList = errors.New(KeyHomeworks + " is not a list")
	ErrItemNotObject    = errors.New("homework is not an object")
)

// ShapeError reports a structurally malformed response or homework item.
type ShapeError struct {
	Kind ShapeKind
	// Got is the Go type that was found instead (empty for ShapeMissingKey).
	Got string
}

func (e *ShapeError) Error() string {
	msg := e.sentinel().Error()
	if e.Got != "" {
		return fmt.Sprintf("%s (got %s)", msg, e.Got)
	}
	return msg
}

// Is lets errors.Is match a ShapeError against the Err* sentinels.
func (e *ShapeError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ShapeError) sentinel() error {
	switch e.Kind {
	case ShapeNotObject:
		return ErrNotObject
	case ShapeMissingKey:
		return ErrMissingHomeworks
	case ShapeNotList:
		return ErrHomeworksNotList
	default:
		return ErrItemNotObject
	}
}

// MissingFieldError reports a homework item without a usable field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("homework has no %s field", e.Field)
}

// UnknownStatusError carries a status code that is not in VerdictTable.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}
