package domain

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

// Storage keys shared by the favorite and theme stores
const (
	// FavoritesKey holds the JSON list of favorited quote identifiers
	FavoritesKey = "favorites"
	// ThemeKey holds the selected theme as a raw integer
	ThemeKey = "selectedTheme"
)

var (
	// ErrNotFound is returned by a KeyValueStore when a key has no value
	ErrNotFound = errors.New("key not found")
	// ErrInvalidTheme is returned when a theme selection is outside the known set
	ErrInvalidTheme = errors.New("invalid theme selection")
)

// QuoteRecord is one displayable quote. Records are immutable once loaded.
type QuoteRecord struct {
	// ID is derived from the quote content and is stable across restarts
	ID uuid.UUID
	// Text is the quote body
	Text string
	// Author of the quote
	Author string
	// Category label, e.g. "motivation"
	Category string
}

// Catalog is the ordered, read-only collection of quotes for a session
type Catalog []QuoteRecord

// FavoriteSet holds the identifiers of favorited quotes
type FavoriteSet map[uuid.UUID]struct{}

// NewFavoriteSet builds a set from the given identifiers
func NewFavoriteSet(ids ...uuid.UUID) FavoriteSet {
	set := make(FavoriteSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is in the set
func (s FavoriteSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set
func (s FavoriteSet) Clone() FavoriteSet {
	out := make(FavoriteSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Strings returns the identifiers in canonical string form, sorted
func (s FavoriteSet) Strings() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id.String())
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same identifiers
func (s FavoriteSet) Equal(other FavoriteSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// ThemeSelection identifies one of the built-in themes
type ThemeSelection int

const (
	// ThemeLight is the default theme
	ThemeLight ThemeSelection = iota
	// ThemeDark is the dark theme
	ThemeDark
	// ThemeColorful is the gradient theme
	ThemeColorful
)

// Valid reports whether the selection names a known theme
func (t ThemeSelection) Valid() bool {
	return t >= ThemeLight && t <= ThemeColorful
}

func (t ThemeSelection) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	case ThemeColorful:
		return "colorful"
	default:
		return "unknown"
	}
}

// ThemeDefinition is the static palette of a theme.
// Color specs are hex strings; an empty spec means the theme has no such color.
type ThemeDefinition struct {
	ID         ThemeSelection
	Name       string
	Background string
	Text       string
	Accent     string
	// Gradient is optional and ordered from start to end
	Gradient []string
}

// PrefersDark reports whether the presentation layer should use a dark color scheme
func (d ThemeDefinition) PrefersDark() bool {
	return d.ID == ThemeDark
}
