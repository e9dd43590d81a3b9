package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used for entry dates.
const DateLayout = "2006-01-02"

var (
	// ErrValidation matches every input validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownMember matches lookups of a key outside the roster.
	ErrUnknownMember = errors.New("unknown member")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownMemberError is returned for member keys outside the roster.
type UnknownMemberError struct {
	Key string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("unknown member %q", e.Key)
}

// Is makes UnknownMemberError match both ErrUnknownMember and ErrValidation.
func (e *UnknownMemberError) Is(target error) bool {
	return target == ErrUnknownMember || target == ErrValidation
}

// WeightEntry represents a single dated weight measurement.
type WeightEntry struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// ParseDate validates a calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	if s == "" {
		return "", &ValidationError{Field: "date", Message: "is required"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return t.Format(DateLayout), nil
}

// ValidateWeight rejects zero, negative, NaN and infinite weights.
func ValidateWeight(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: "weight", Message: "must be a finite number"}
	}
	if v <= 0 {
		return &ValidationError{Field: "weight", Message: "must be > 0"}
	}
	return nil
}

// KVStore is the port for key/value persistence. Get reports whether the
// key exists; a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
