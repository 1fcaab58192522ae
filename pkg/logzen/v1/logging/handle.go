package logging

import (
	"log/slog"
)

// Attribute keys under which a handle is attached to log records.
const (
	SubsystemKey = "subsystem"
	CategoryKey  = "category"
)

// Handle routes log emission to a (subsystem, category) pair. It is an
// immutable value and safe to share between goroutines.
type Handle struct {
	subsystem Subsystem
	category  Category
}

// MakeLog returns the handle for subsystem and category.
func MakeLog(subsystem Subsystem, category Category) Handle {
	return Handle{subsystem: subsystem, category: category}
}

// MakeDefaultLog returns the handle for category under DefaultSubsystem.
func MakeDefaultLog(category Category) Handle {
	return MakeLog(DefaultSubsystem(), category)
}

// MakeLogNamed builds a handle from a category name coming from a dynamic
// source. Unknown names are rejected with an InvalidCategoryError.
func MakeLogNamed(subsystem Subsystem, categoryName string) (Handle, error) {
	category, err := ParseCategory(categoryName)
	if err != nil {
		return Handle{}, err
	}
	return MakeLog(subsystem, category), nil
}

// Subsystem returns the subsystem the handle logs under.
func (h Handle) Subsystem() Subsystem { return h.subsystem }

// Category returns the handle's category.
func (h Handle) Category() Category { return h.category }

// String renders the handle as "subsystem/category".
func (h Handle) String() string {
	return string(h.subsystem) + "/" + h.category.String()
}

// Attrs returns the key/value pairs that bind a logger to this handle.
func (h Handle) Attrs() []interface{} {
	return []interface{}{
		slog.String(SubsystemKey, string(h.subsystem)),
		slog.String(CategoryKey, h.category.String()),
	}
}

// LogValue implements slog.LogValuer so a handle logs as a group.
func (h Handle) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(SubsystemKey, string(h.subsystem)),
		slog.String(CategoryKey, h.category.String()),
	)
}
