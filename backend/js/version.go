package js

//go:generate go tool stringer --linecomment --type Version --output version_string.go

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/ardnew/ilc/il"
)

// Version selects the JavaScript dialect to emit.
type Version int

// Supported dialects.
const (
	ES5 Version = iota // es5
	ES6                // es6
)

// DefaultVersion is the dialect used when none is configured.
const DefaultVersion = ES6

// ErrInvalidVersion is returned when parsing an unknown dialect name.
var ErrInvalidVersion = il.NewError("invalid javascript version")

// Versions returns an iterator over all supported dialects.
func Versions() iter.Seq[Version] {
	return func(yield func(Version) bool) {
		for v := ES5; v <= ES6; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

// ParseVersion parses a dialect name, case-insensitively. "es2015" is
// accepted as an alias of es6.
func ParseVersion(s string) (Version, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "es2015" {
		return ES6, nil
	}

	for v := range Versions() {
		if v.String() == name {
			return v, nil
		}
	}

	return DefaultVersion, ErrInvalidVersion.With(slog.String("version", s))
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	if v < ES5 || v > ES6 {
		return nil, ErrInvalidVersion.With(slog.Int("version", int(v)))
	}

	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// declKeyword returns the keyword used for variable declarations.
func (v Version) declKeyword() string {
	if v >= ES6 {
		return "let"
	}

	return "var"
}
