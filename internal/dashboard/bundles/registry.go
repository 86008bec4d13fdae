// Package bundles declares which queries back each dashboard tab and how
// their results are normalized.
package bundles

import (
	"fmt"
	"sync"

	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	coredomain "nathanbeddoewebdev/donorlens/internal/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/util"
)

// Endpoint is one query of a tab before the organization id is known.
type Endpoint struct {
	Name string
	Path string
}

// Definition describes one dashboard tab.
type Definition struct {
	Name      string
	Title     string
	Endpoints []Endpoint
	Normalize func(fetch.Results) domain.Record
}

// Bundle interpolates org into every endpoint and returns the tab's bundle.
func (d Definition) Bundle(org string) (fetch.Bundle, error) {
	queries := make([]fetch.Query, 0, len(d.Endpoints))
	for _, e := range d.Endpoints {
		q, err := fetch.NewQuery(e.Name, e.Path, org, nil)
		if err != nil {
			return fetch.Bundle{}, fmt.Errorf("build %s bundle: %w", d.Name, err)
		}
		queries = append(queries, q)
	}
	b, err := fetch.NewBundle(d.Name, queries...)
	if err != nil {
		return fetch.Bundle{}, fmt.Errorf("build %s bundle: %w", d.Name, err)
	}
	return b, nil
}

var (
	mu       sync.RWMutex
	registry = map[string]Definition{}
	order    []string
)

// Register adds a tab definition. It panics on an empty name, a missing
// normalizer or a duplicate registration.
func Register(def Definition) {
	name := util.NormalizeKey(def.Name)
	if name == "" {
		panic("bundles: empty tab name")
	}
	if def.Normalize == nil {
		panic(fmt.Sprintf("bundles: tab %q has no normalizer", def.Name))
	}
	def.Name = name

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("bundles: tab %q already registered", name))
	}
	registry[name] = def
	order = append(order, name)
}

// Get returns the definition registered under name.
func Get(name string) (Definition, error) {
	mu.RLock()
	def, ok := registry[util.NormalizeKey(name)]
	mu.RUnlock()

	if !ok {
		return Definition{}, fmt.Errorf("%w %q", coredomain.ErrUnknownTab, name)
	}
	return def, nil
}

// List returns the registered tab names in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), order...)
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Definition{}
	order = nil
}

// RegisterDefaults registers the built-in tabs. It is idempotent so tests
// may call it after Reset.
func RegisterDefaults() {
	for _, def := range Defaults() {
		mu.RLock()
		_, exists := registry[def.Name]
		mu.RUnlock()
		if !exists {
			Register(def)
		}
	}
}

func init() {
	RegisterDefaults()
}
