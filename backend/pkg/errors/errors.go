package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeDuplicateName is returned when a user name is already registered
	ErrorTypeDuplicateName ErrorType = "duplicate_name"
	// ErrorTypeNotFound is returned when a user or post cannot be resolved
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeBlankField is returned when a required field is empty after trimming
	ErrorTypeBlankField ErrorType = "blank_field"
	// ErrorTypeIndexOutOfRange is returned when a post index is outside the feed
	ErrorTypeIndexOutOfRange ErrorType = "index_out_of_range"
	// ErrorTypeInvalidIndexFormat is returned when a post index is not an integer
	ErrorTypeInvalidIndexFormat ErrorType = "invalid_index_format"
	// ErrorTypeInvalidBody is returned when a request body cannot be decoded
	ErrorTypeInvalidBody ErrorType = "invalid_body"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// ErrDuplicateName is returned when registering a name that already exists
type ErrDuplicateName struct {
	*BaseError
	Name string
}

func NewDuplicateName(name string) *ErrDuplicateName {
	return &ErrDuplicateName{
		BaseError: NewBaseError(ErrorTypeDuplicateName, fmt.Sprintf("user already exists: %s", name), nil),
		Name:      name,
	}
}

// ErrNotFound is returned when a named entity does not exist
type ErrNotFound struct {
	*BaseError
	Entity string
	Key    string
}

func NewNotFound(entity, key string) *ErrNotFound {
	return &ErrNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", entity, key), nil),
		Entity:    entity,
		Key:       key,
	}
}

// ErrBlankField is returned when a required input is blank
type ErrBlankField struct {
	*BaseError
	Field string
}

func NewBlankField(field string) *ErrBlankField {
	return &ErrBlankField{
		BaseError: NewBaseError(ErrorTypeBlankField, fmt.Sprintf("%s must not be blank", field), nil),
		Field:     field,
	}
}

// ErrIndexOutOfRange is returned when an index does not address a post
type ErrIndexOutOfRange struct {
	*BaseError
	Index int
	Len   int
}

func NewIndexOutOfRange(index, length int) *ErrIndexOutOfRange {
	return &ErrIndexOutOfRange{
		BaseError: NewBaseError(ErrorTypeIndexOutOfRange, fmt.Sprintf("no post with index %d (have %d)", index, length), nil),
		Index:     index,
		Len:       length,
	}
}

// ErrInvalidIndexFormat is returned when an index string does not parse
type ErrInvalidIndexFormat struct {
	*BaseError
	Raw string
}

func NewInvalidIndexFormat(raw string, err error) *ErrInvalidIndexFormat {
	return &ErrInvalidIndexFormat{
		BaseError: NewBaseError(ErrorTypeInvalidIndexFormat, fmt.Sprintf("invalid post index: %q", raw), err),
		Raw:       raw,
	}
}

// ErrInvalidBody is returned when a request body is not valid JSON for its endpoint
type ErrInvalidBody struct {
	*BaseError
}

func NewInvalidBody(err error) *ErrInvalidBody {
	return &ErrInvalidBody{
		BaseError: NewBaseError(ErrorTypeInvalidBody, "invalid request body", err),
	}
}

// Helper functions

// KindOf returns the ErrorType carried by err, or "" if err is not one of ours.
func KindOf(err error) ErrorType {
	var typed interface{ kind() ErrorType }
	if stderrors.As(err, &typed) {
		return typed.kind()
	}
	return ""
}

func (e *BaseError) kind() ErrorType { return e.Type }

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	return err != nil && KindOf(err) == errType
}

// MessageOf returns the human readable message of one of our errors, falling
// back to err.Error() for anything else.
func MessageOf(err error) string {
	var base interface{ message() string }
	if stderrors.As(err, &base) {
		return base.message()
	}
	return err.Error()
}

func (e *BaseError) message() string { return e.Message }
