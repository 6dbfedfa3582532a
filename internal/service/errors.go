package service

import (
	"alcyxob/fitness-tracker/internal/repository"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// --- Error Definitions ---
var (
	// ErrNotFound covers both missing records and records owned by another
	// profile; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrNoProfile means the identity is valid but has not created a profile.
	ErrNoProfile = errors.New("no profile exists for this identity")
)

// msgDoesNotExist reports a reference to a missing or foreign record.
const msgDoesNotExist = "Invalid pk \"%s\" - object does not exist."

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) Addf(field, format string, args ...any) *ValidationError {
	return e.Add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e as an error only when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// notFound translates the repository miss into the service sentinel.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
