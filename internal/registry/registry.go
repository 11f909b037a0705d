// Package registry provides a global registry for scenario set factories.
// Built-in sets register themselves in init() functions, so commands can
// list and run them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/collide/internal/scenario"
)

// SetInfo contains metadata about a registered set.
type SetInfo struct {
	ID    string
	Title string
	Cases int
}

// Factory builds a fresh copy of a scenario set.
type Factory func() scenario.Set

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SetInfo)
	mu        sync.RWMutex
)

// Register adds a set factory to the registry.
// Typically called from an init() function.
// Panics if a set with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: set %q already registered", id))
	}

	factories[id] = f

	set := f()
	infos[id] = SetInfo{ID: id, Title: set.Title, Cases: len(set.Cases)}
}

// List returns information about all registered sets, sorted by ID.
func List() []SetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SetInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a registered set by its ID.
// The set's ID and Source are filled in from the registration.
func Create(id string) (scenario.Set, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return scenario.Set{}, fmt.Errorf("registry: unknown set %q", id)
	}

	set := f()
	set.ID = id
	set.Source = "builtin"
	return set, nil
}

// All builds every registered set, sorted by ID.
func All() []scenario.Set {
	list := List()
	sets := make([]scenario.Set, 0, len(list))
	for _, info := range list {
		if set, err := Create(info.ID); err == nil {
			sets = append(sets, set)
		}
	}
	return sets
}

// Exists checks if a set with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
