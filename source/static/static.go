// Package static provides a fixed in-memory credential source, useful
// for composition and tests.
package static

import (
	"context"

	"github.com/majorcontext/credchain"
)

// Provider returns the same credentials (or the same error) on every
// Retrieve.
type Provider struct {
	name  string
	creds credchain.Credentials
	err   error
}

var _ credchain.Provider = (*Provider)(nil)

// New creates a source that always returns creds under the given name.
func New(name string, creds credchain.Credentials) *Provider {
	creds.Source = name
	return &Provider{name: name, creds: creds}
}

// NewError creates a source that always fails with err.
func NewError(name string, err error) *Provider {
	return &Provider{name: name, err: err}
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return p.name
}

// Retrieve returns the fixed credentials or error.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	if p.err != nil {
		return credchain.Credentials{}, p.err
	}
	return p.creds, nil
}
