package passgen

import (
	"errors"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+~`|}{[]:;?><,./-="
)

var ErrUnknownClass = errors.New("unknown character class")

// Class is one of the four fixed alphabets a password can draw from.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Numbers
	Symbols
)

// AllClasses lists the classes in pool order.
var AllClasses = []Class{Lowercase, Uppercase, Numbers, Symbols}

// String returns the class name used in the API and CLI.
func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	default:
		return "unknown"
	}
}

// Alphabet returns the literal characters of the class.
func (c Class) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Numbers:
		return numberChars
	case Symbols:
		return symbolChars
	default:
		return ""
	}
}

// ParseClass resolves a class by name, case-insensitively.
func ParseClass(name string) (Class, error) {
	for _, c := range AllClasses {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, ErrUnknownClass
}

// ClassSet records which character classes are enabled.
type ClassSet struct {
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// DefaultClassSet returns the initial selection: lowercase only.
func DefaultClassSet() ClassSet {
	return ClassSet{Lowercase: true}
}

// Has reports whether c is enabled.
func (s ClassSet) Has(c Class) bool {
	switch c {
	case Lowercase:
		return s.Lowercase
	case Uppercase:
		return s.Uppercase
	case Numbers:
		return s.Numbers
	case Symbols:
		return s.Symbols
	default:
		return false
	}
}

// With returns a copy of s with c set to on.
func (s ClassSet) With(c Class, on bool) ClassSet {
	switch c {
	case Lowercase:
		s.Lowercase = on
	case Uppercase:
		s.Uppercase = on
	case Numbers:
		s.Numbers = on
	case Symbols:
		s.Symbols = on
	}
	return s
}

// Toggle returns a copy of s with c flipped.
func (s ClassSet) Toggle(c Class) ClassSet {
	return s.With(c, !s.Has(c))
}

// Empty reports whether no class is enabled.
func (s ClassSet) Empty() bool {
	return !s.Lowercase && !s.Uppercase && !s.Numbers && !s.Symbols
}

// Enabled returns the enabled classes in pool order.
func (s ClassSet) Enabled() []Class {
	var out []Class
	for _, c := range AllClasses {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Pool concatenates the alphabets of every enabled class. The order is
// fixed so that a seeded source yields reproducible output.
func (s ClassSet) Pool() string {
	var sb strings.Builder
	for _, c := range s.Enabled() {
		sb.WriteString(c.Alphabet())
	}
	return sb.String()
}
