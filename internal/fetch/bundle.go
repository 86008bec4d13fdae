package fetch

import (
	"fmt"
	"sort"

	"nathanbeddoewebdev/donorlens/internal/source"
)

// Bundle is the ordered, immutable set of queries behind one dashboard tab.
type Bundle struct {
	name    string
	queries []Query
}

// NewBundle validates that query names are unique and returns the bundle.
func NewBundle(name string, queries ...Query) (Bundle, error) {
	seen := make(map[string]struct{}, len(queries))
	copied := make([]Query, 0, len(queries))
	for _, q := range queries {
		if q.Name == "" {
			return Bundle{}, fmt.Errorf("bundle %s: %w", name, ErrEmptyQueryName)
		}
		if _, dup := seen[q.Name]; dup {
			return Bundle{}, fmt.Errorf("bundle %s: %w %q", name, ErrDuplicateQuery, q.Name)
		}
		seen[q.Name] = struct{}{}
		copied = append(copied, q)
	}
	return Bundle{name: name, queries: copied}, nil
}

// Name returns the bundle name.
func (b Bundle) Name() string { return b.name }

// Len returns the number of queries.
func (b Bundle) Len() int { return len(b.queries) }

// Queries returns a copy of the queries in declaration order.
func (b Bundle) Queries() []Query {
	out := make([]Query, len(b.queries))
	copy(out, b.queries)
	return out
}

// Results maps query name to its outcome for one fetch cycle.
type Results map[string]source.Result

// Failed returns the sorted names of failed queries.
func (r Results) Failed() []string {
	names := []string{}
	for name, res := range r {
		if !res.OK() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Get returns the result for name. A missing entry is reported as a
// failure so normalizers never have to special-case absence.
func (r Results) Get(name string) source.Result {
	res, ok := r[name]
	if !ok {
		return source.Failure(fmt.Errorf("query %s: %w", name, ErrMissingResult))
	}
	return res
}
