// Where: internal/creds/creds.go
// What: Credential set type and scheme helpers.
// Why: Model the two Kaggle credential schemes behind one value type.
package creds

import (
	"errors"
	"strings"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
)

// ErrNotFound is returned when no usable credential set can be resolved.
var ErrNotFound = errors.New("no kaggle credentials found")

// Kind identifies which credential scheme a set dispatches with.
type Kind string

const (
	// KindScoped is the KGAT_-prefixed scoped token scheme.
	KindScoped Kind = "scoped"
	// KindLegacy is the username + 32-char hex key scheme.
	KindLegacy Kind = "legacy"
	// KindNone means the set is not usable.
	KindNone Kind = "none"
)

// Set holds the credentials resolved from one source. A set is usable when
// at least one of LegacyKey or ScopedToken is present; Username alone is not
// enough.
type Set struct {
	Username    string
	LegacyKey   string
	ScopedToken string
}

// Usable reports whether the set can authenticate at least one surface.
func (s Set) Usable() bool {
	return s.LegacyKey != "" || s.ScopedToken != ""
}

// Kind returns the scheme the set dispatches with. Scoped tokens win when
// both are present because the protocol surface prefers them.
func (s Set) Kind() Kind {
	switch {
	case s.ScopedToken != "":
		return KindScoped
	case s.LegacyKey != "":
		return KindLegacy
	default:
		return KindNone
	}
}

// BearerValue returns the value used for bearer-style authentication,
// matching Kind().
func (s Set) BearerValue() string {
	if s.ScopedToken != "" {
		return s.ScopedToken
	}
	return s.LegacyKey
}

// Alternate derives the other-scheme variant of the set. It returns ok=false
// when no real alternate exists, i.e. the set holds only one scheme or both
// values would dispatch identically.
func (s Set) Alternate() (Set, bool) {
	if s.LegacyKey == "" || s.ScopedToken == "" {
		return Set{}, false
	}
	if s.LegacyKey == s.ScopedToken {
		return Set{}, false
	}
	alt := s
	switch s.Kind() {
	case KindScoped:
		alt.ScopedToken = ""
	case KindLegacy:
		alt.LegacyKey = ""
	default:
		return Set{}, false
	}
	return alt, true
}

// IsScopedToken reports whether the value looks like a scoped token.
func IsScopedToken(value string) bool {
	return strings.HasPrefix(value, meta.ScopedTokenPrefix)
}

// IsLegacyKey reports whether the value looks like a legacy 32-char hex key.
func IsLegacyKey(value string) bool {
	if len(value) != 32 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
