// Package registry resolves module names to installed module metadata.
// A registry can be built from a SWORD mods.d directory, from a SQLite
// catalog, or in memory; all of them serve as the bookmarks model's
// module resolver.
package registry

import (
	"sort"
	"sync"

	"github.com/FocuswithJustin/Versemark/core/bookmarks"
)

// Module is one installed module's metadata.
type Module struct {
	name        string
	typ         bookmarks.ModuleType
	description string
	language    string
}

// NewModule constructs a module record.
func NewModule(name string, typ bookmarks.ModuleType, description, language string) *Module {
	return &Module{name: name, typ: typ, description: description, language: language}
}

// Name is the module's unique name, e.g. "KJV".
func (m *Module) Name() string { return m.name }

// Type classifies the module.
func (m *Module) Type() bookmarks.ModuleType { return m.typ }

// Description is the module's descriptive metadata.
func (m *Module) Description() string { return m.description }

// Language is the module's BCP 47 language code, e.g. "en".
func (m *Module) Language() string { return m.language }

// TypeString renders a module type for display.
func TypeString(t bookmarks.ModuleType) string {
	switch t {
	case bookmarks.ModuleBible:
		return "bible"
	case bookmarks.ModuleCommentary:
		return "commentary"
	case bookmarks.ModuleLexicon:
		return "lexicon"
	case bookmarks.ModuleGenericBook:
		return "book"
	}
	return "unknown"
}

// Registry is an in-memory module catalog keyed by module name.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Add registers a module, replacing any module of the same name.
func (r *Registry) Add(m *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[m.name] = m
}

// Lookup resolves a module name. Returns nil when the module is not
// installed, which callers treat as graceful degradation.
func (r *Registry) Lookup(name string) bookmarks.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	if !ok {
		return nil
	}
	return m
}

// Modules returns all registered modules sorted by name.
func (r *Registry) Modules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Len reports the number of registered modules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}
