// Package logging defines the closed set of logging categories, the subsystem
// that scopes them, and the immutable log handles built from the pair.
package logging

import (
	"fmt"
	"strings"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
)

// Category groups log output by functional area within a subsystem.
// The set is closed: only the constants below are valid.
type Category int

const (
	// CategoryDefault is the catch-all for anything that doesn't match another category.
	CategoryDefault Category = iota
	// CategoryDatabase covers working with the database and models.
	CategoryDatabase
	// CategoryNetworking covers API calls and other network requests.
	CategoryNetworking
	// CategoryOperations covers background operations and similar work.
	CategoryOperations
	// CategoryPlayback covers media playback.
	CategoryPlayback
	// CategoryReporting covers error reporting and analytics.
	CategoryReporting
	// CategoryUI covers the user interface.
	CategoryUI

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryDefault:    "default",
	CategoryDatabase:   "database",
	CategoryNetworking: "networking",
	CategoryOperations: "operations",
	CategoryPlayback:   "playback",
	CategoryReporting:  "reporting",
	CategoryUI:         "ui",
}

// String returns the category's raw name as used in log output.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, 0, numCategories)
	for c := CategoryDefault; c < numCategories; c++ {
		all = append(all, c)
	}
	return all
}

// ParseCategory resolves a category from its name, ignoring case and
// surrounding whitespace. Unknown names are rejected with an
// InvalidCategoryError rather than mapped to CategoryDefault.
func ParseCategory(name string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == normalized {
			return Category(c), nil
		}
	}
	return CategoryDefault, lzerrors.NewInvalidCategoryError(name)
}

// MarshalText implements encoding.TextMarshaler so categories serialize by name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, lzerrors.NewInvalidCategoryError(c.String())
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseCategory.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
