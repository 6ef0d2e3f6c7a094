package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field limits, in characters.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = fmt.Errorf("title is longer than %d characters", MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("description is longer than %d characters", MaxDescriptionLength)
	ErrNoDirectory        = errors.New("no directory given")
)

// ValidateTitle checks a new photo title.
func ValidateTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription checks a new photo description. Empty is allowed.
func ValidateDescription(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Validator returns the check for field.
func (f Field) Validator() func(string) error {
	if f == FieldDescription {
		return ValidateDescription
	}
	return ValidateTitle
}

// Limit returns the length limit for field.
func (f Field) Limit() int {
	if f == FieldDescription {
		return MaxDescriptionLength
	}
	return MaxTitleLength
}
