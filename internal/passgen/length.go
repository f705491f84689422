package passgen

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	MinLength = 4
	MaxLength = 16
)

var (
	ErrLengthRequired = errors.New("length is required")
	ErrLengthTooShort = errors.New("length must be at least 4")
	ErrLengthTooLong  = errors.New("length must be at most 16")
	ErrEmptyPool      = errors.New("character pool is empty")
)

// Stable machine-readable codes for the errors above.
const (
	CodeRequired  = "required"
	CodeTooShort  = "too_short"
	CodeTooLong   = "too_long"
	CodeEmptyPool = "empty_pool"
)

// ValidateLength parses raw user input into a password length within
// [MinLength, MaxLength]. Integral values written in decimal or exponent
// form ("8.0", "1e1") are accepted. Input that is empty or not an integral
// number is reported as ErrLengthRequired.
func ValidateLength(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrLengthRequired
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(s, "-") {
				return 0, ErrLengthTooShort
			}
			return 0, ErrLengthTooLong
		}
		return parseIntegralFloat(s)
	}

	return checkLength(n)
}

func parseIntegralFloat(s string) (int, error) {
	// Hex floats and digit separators are Go syntax, not plain numbers.
	if strings.ContainsAny(s, "xX_") {
		return 0, ErrLengthRequired
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrLengthRequired
	}
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, ErrLengthRequired
	}

	switch {
	case f < MinLength:
		return 0, ErrLengthTooShort
	case f > MaxLength:
		return 0, ErrLengthTooLong
	}
	return int(f), nil
}

func checkLength(n int) (int, error) {
	if n < MinLength {
		return 0, ErrLengthTooShort
	}
	if n > MaxLength {
		return 0, ErrLengthTooLong
	}
	return n, nil
}

// Code returns the code for a validation or generation error, or "" if err
// is not one of them.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrLengthRequired):
		return CodeRequired
	case errors.Is(err, ErrLengthTooShort):
		return CodeTooShort
	case errors.Is(err, ErrLengthTooLong):
		return CodeTooLong
	case errors.Is(err, ErrEmptyPool):
		return CodeEmptyPool
	default:
		return ""
	}
}

// Message returns the inline text shown to the user for err. Errors that
// are not input errors get a generic message.
func Message(err error) string {
	switch Code(err) {
	case CodeRequired:
		return "Length is required"
	case CodeTooShort:
		return "Should be at least 4 characters"
	case CodeTooLong:
		return "Should be at most 16 characters"
	case CodeEmptyPool:
		return "Select at least one character class"
	default:
		return "Something went wrong"
	}
}

// IsUserError reports whether err is a recoverable input error that should
// be surfaced to the user rather than treated as a failure.
func IsUserError(err error) bool {
	return Code(err) != ""
}
