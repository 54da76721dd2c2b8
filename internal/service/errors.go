package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that a resource does not exist or is not owned
	// by the caller. Handlers map both cases to 404 so recipe ids cannot
	// be probed across users.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCredentials is returned on login with a bad email/password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// FetchError reports a network or HTTP failure while retrieving a source
// page or image.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LLMError reports that the model provider returned no usable completion.
type LLMError struct {
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm: %s: %v", e.Message, e.Err)
	}
	return "llm: " + e.Message
}

func (e *LLMError) Unwrap() error { return e.Err }

// ParseError reports that the model completion was not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse completion: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// FieldViolation describes a single schema violation in the extraction
// output.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports that the parsed extraction output failed schema
// validation. It carries every field-level violation found.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "extraction validation failed: " + strings.Join(parts, "; ")
}
