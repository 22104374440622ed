package model

import (
	"sort"
	"sync"
)

// Factory supplies the component specific part of a bundle: extra manifest
// entries and artifacts written at construction, and the checks run by
// Validate.
type Factory interface {
	Name() string
	Manifest() map[string]string
	Artifacts() map[string]Artifact
	Validate(b *Bundle) error
}

// FactoryFunc rebuilds a factory from a loaded, not yet validated bundle.
type FactoryFunc func(b *Bundle) (Factory, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]FactoryFunc)
)

// RegisterFactory makes a factory available to Load under name, which must
// match the factory's Name.
func RegisterFactory(name string, fn FactoryFunc) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if fn == nil {
		panic("model: RegisterFactory with nil func for " + name)
	}
	factories[name] = fn
}

func LookupFactory(name string) (FactoryFunc, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	fn, exists := factories[name]
	return fn, exists
}

func Factories() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
