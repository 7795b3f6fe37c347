package dialect

import (
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Dialect)
	aliases    = make(map[string]string)
)

// Register adds a dialect to the registry under its canonical name and all
// of its aliases. Called by dialect definitions in their init() functions.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name] = d
	for _, a := range d.Aliases {
		aliases[a] = d.Name
	}
}

// Normalize resolves a dialect name or alias to its canonical name.
// Unknown names are returned unchanged (lowercased) so callers can report
// them verbatim.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Lookup retrieves a dialect by canonical name or alias.
func Lookup(name string) (*Dialect, bool) {
	canonical := Normalize(name)
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[canonical]
	return d, ok
}

// IsRegistered checks if a dialect name or alias is known.
func IsRegistered(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns all canonical dialect names (sorted).
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
