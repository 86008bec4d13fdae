package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// OrgPlaceholder is replaced by the path-escaped organization id.
const OrgPlaceholder = "{org}"

// OrgParam is the query parameter carrying the organization id for
// endpoints that do not embed it in the path.
const OrgParam = "org_id"

var (
	// ErrEmptyQueryName indicates a query without a name.
	ErrEmptyQueryName = errors.New("query name is required")

	// ErrUnresolvedPath indicates a path template still containing a
	// placeholder after interpolation.
	ErrUnresolvedPath = errors.New("unresolved path placeholder")

	// ErrDuplicateQuery indicates two queries sharing a name in one bundle.
	ErrDuplicateQuery = errors.New("duplicate query name")

	// ErrMissingResult indicates a query with no recorded outcome.
	ErrMissingResult = errors.New("no result for query")
)

// Query is one named GET against the analytics backend. Path is fully
// interpolated and includes the encoded query string.
type Query struct {
	Name string
	Path string
}

// QueryName implements source.Query.
func (q Query) QueryName() string { return q.Name }

// QueryPath implements source.Query.
func (q Query) QueryPath() string { return q.Path }

// NewQuery interpolates template for the given organization. When the
// template has no {org} placeholder the id is sent as the org_id query
// parameter. Extra params are encoded in sorted key order.
func NewQuery(name, template, orgID string, params map[string]string) (Query, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Query{}, ErrEmptyQueryName
	}

	values := url.Values{}
	path := template
	if strings.Contains(path, OrgPlaceholder) {
		path = strings.ReplaceAll(path, OrgPlaceholder, url.PathEscape(orgID))
	} else {
		values.Set(OrgParam, orgID)
	}

	if strings.ContainsAny(path, "{}") {
		return Query{}, fmt.Errorf("query %s: %w in %q", name, ErrUnresolvedPath, template)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Set(k, params[k])
	}

	if len(values) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + values.Encode()
	}

	return Query{Name: name, Path: path}, nil
}
