package fetch

import (
	"errors"
	"testing"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name     string
		template string
		org      string
		params   map[string]string
		wantPath string
	}{
		{
			name:     "path family",
			template: "/organizations/{org}/cohorts/acquisition",
			org:      "org 7",
			wantPath: "/organizations/org%207/cohorts/acquisition",
		},
		{
			name:     "query parameter family",
			template: "/analytics/donors/lifecycle",
			org:      "42",
			wantPath: "/analytics/donors/lifecycle?org_id=42",
		},
		{
			name:     "extra params sorted",
			template: "/analytics/revenue/monthly",
			org:      "42",
			params:   map[string]string{"year": "2024", "months": "12"},
			wantPath: "/analytics/revenue/monthly?months=12&org_id=42&year=2024",
		},
		{
			name:     "existing query string",
			template: "/organizations/{org}/cashflow/grid?view=monthly",
			org:      "42",
			params:   map[string]string{"year": "2024"},
			wantPath: "/organizations/42/cashflow/grid?view=monthly&year=2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery("q", tt.template, tt.org, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", q.Path, tt.wantPath)
			}
		})
	}
}

func TestNewQuery_Errors(t *testing.T) {
	if _, err := NewQuery(" ", "/x", "1", nil); !errors.Is(err, ErrEmptyQueryName) {
		t.Errorf("expected ErrEmptyQueryName, got %v", err)
	}
	if _, err := NewQuery("q", "/organizations/{org}/campaigns/{campaign}", "1", nil); !errors.Is(err, ErrUnresolvedPath) {
		t.Errorf("expected ErrUnresolvedPath, got %v", err)
	}
}

func TestNewBundle_RejectsDuplicates(t *testing.T) {
	a := Query{Name: "a", Path: "/a"}
	if _, err := NewBundle("x", a, a); !errors.Is(err, ErrDuplicateQuery) {
		t.Fatalf("expected ErrDuplicateQuery, got %v", err)
	}
}

func TestBundle_QueriesIsACopy(t *testing.T) {
	b, err := NewBundle("x", Query{Name: "a", Path: "/a"}, Query{Name: "b", Path: "/b"})
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	qs := b.Queries()
	qs[0].Name = "mutated"

	if b.Queries()[0].Name != "a" {
		t.Error("bundle was mutated through Queries()")
	}
	if b.Len() != 2 || b.Name() != "x" {
		t.Errorf("unexpected bundle %s/%d", b.Name(), b.Len())
	}
}

func TestResults_GetMissingIsFailure(t *testing.T) {
	res := Results{}.Get("absent")
	if res.OK() {
		t.Fatal("expected missing result to be a failure")
	}
	if !errors.Is(res.Err, ErrMissingResult) {
		t.Errorf("expected ErrMissingResult, got %v", res.Err)
	}
}
