// Package session supplies the credential and organization id that a fetch
// cycle runs under. It is passed to the dashboard explicitly rather than
// looked up from global state.
package session

import (
	"context"
	"errors"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/services/auth"
)

// Provider answers who the dashboard is loading for.
type Provider interface {
	// Token returns the bearer token. An empty token is valid and sends
	// requests without an Authorization header.
	Token(ctx context.Context) (string, error)

	// OrganizationID returns the organization id and whether one is set.
	OrganizationID(ctx context.Context) (string, bool)
}

// Static is a Provider with fixed values.
type Static struct {
	APIToken string
	OrgID    string
}

func (s Static) Token(context.Context) (string, error) { return s.APIToken, nil }

func (s Static) OrganizationID(context.Context) (string, bool) {
	id := strings.TrimSpace(s.OrgID)
	return id, id != ""
}

// Stored reads the token from the keychain and the organization id from the
// loaded configuration.
type Stored struct {
	store auth.Store
	cfg   *config.Config
}

// NewStored returns a Provider backed by store and cfg.
func NewStored(store auth.Store, cfg *config.Config) *Stored {
	return &Stored{store: store, cfg: cfg}
}

func (s *Stored) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := s.store.GetToken(auth.APIAccount)
	if errors.Is(err, auth.ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}

func (s *Stored) OrganizationID(context.Context) (string, bool) {
	if s.cfg == nil {
		return "", false
	}
	return s.cfg.Organization()
}

// WithOrganization returns a Provider that answers org and delegates the
// token to p. A blank org leaves p unchanged.
func WithOrganization(p Provider, org string) Provider {
	org = strings.TrimSpace(org)
	if org == "" {
		return p
	}
	return orgOverride{Provider: p, org: org}
}

type orgOverride struct {
	Provider
	org string
}

func (o orgOverride) OrganizationID(context.Context) (string, bool) { return o.org, true }
