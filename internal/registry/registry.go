// Package registry binds log handles to loggers. Loggers are built once per
// handle and shared; per-category minimum levels apply to every logger of
// that category, including ones already handed out.
package registry

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/gxo-labs/logzen/internal/logger"
	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
	lzlog "github.com/gxo-labs/logzen/pkg/logzen/v1/log"
	"github.com/gxo-labs/logzen/pkg/logzen/v1/logging"
)

// Registry is a goroutine-safe cache of handle-bound loggers.
type Registry struct {
	base      lzlog.Logger
	subsystem logging.Subsystem

	mu      sync.RWMutex
	loggers map[logging.Handle]lzlog.Logger
	// levels holds one filter per category, shared by all its loggers.
	levels map[logging.Category]*slog.LevelVar
	// overridden marks categories with a level set by SetCategoryLevel.
	overridden map[logging.Category]struct{}
}

// New creates a registry whose loggers derive from base. Handle uses subsystem
// for every category.
func New(base lzlog.Logger, subsystem logging.Subsystem) *Registry {
	return &Registry{
		base:      base,
		subsystem: subsystem,
		loggers:   make(map[logging.Handle]lzlog.Logger),
		levels:     make(map[logging.Category]*slog.LevelVar),
		overridden: make(map[logging.Category]struct{}),
	}
}

// Subsystem returns the subsystem used by Handle.
func (r *Registry) Subsystem() logging.Subsystem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subsystem
}

// SetSubsystem changes the subsystem used by later Handle calls. Loggers
// already bound to handles of the old subsystem stay valid.
func (r *Registry) SetSubsystem(subsystem logging.Subsystem) {
	r.mu.Lock()
	r.subsystem = subsystem
	r.mu.Unlock()
}

// Handle returns the handle for category under the registry's subsystem.
func (r *Registry) Handle(category logging.Category) logging.Handle {
	return logging.MakeLog(r.Subsystem(), category)
}

// Logger returns the logger bound to handle, building it on first use.
func (r *Registry) Logger(handle logging.Handle) lzlog.Logger {
	r.mu.RLock()
	l, ok := r.loggers[handle]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[handle]; ok {
		return l
	}
	l = r.base.With(handle.Attrs()...).WithLevel(r.levelVarLocked(handle.Category()))
	r.loggers[handle] = l
	return l
}

// levelVarLocked returns the filter of category, creating it at the lowest
// level so it passes everything the base logger does. r.mu must be held.
func (r *Registry) levelVarLocked(category logging.Category) *slog.LevelVar {
	lv, ok := r.levels[category]
	if !ok {
		lv = new(slog.LevelVar)
		lv.Set(slog.Level(math.MinInt32))
		r.levels[category] = lv
	}
	return lv
}

// SetCategoryLevel sets the minimum level for every handle of category.
func (r *Registry) SetCategoryLevel(category logging.Category, level slog.Level) error {
	if !category.Valid() {
		return lzerrors.NewInvalidCategoryError(category.String())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levelVarLocked(category).Set(level)
	r.overridden[category] = struct{}{}
	return nil
}

// CategoryLevel returns the minimum level set for category, if any.
func (r *Registry) CategoryLevel(category logging.Category) (slog.Level, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.overridden[category]; !ok {
		return 0, false
	}
	return r.levels[category].Level(), true
}

// List returns the handles that have a bound logger, ordered by subsystem
// then category.
func (r *Registry) List() []logging.Handle {
	r.mu.RLock()
	handles := make([]logging.Handle, 0, len(r.loggers))
	for h := range r.loggers {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool {
		if handles[i].Subsystem() != handles[j].Subsystem() {
			return handles[i].Subsystem() < handles[j].Subsystem()
		}
		return handles[i].Category() < handles[j].Category()
	})
	return handles
}

// --- Default Global Registry ---

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New(logger.NewDefaultLogger("info"), logging.DefaultSubsystem())
})

// Default returns the process-wide registry over a text logger writing to
// stderr, keyed by the default subsystem.
func Default() *Registry {
	return defaultRegistry()
}
