// Package oauthtoken adapts an oauth2.TokenSource into a chain source.
package oauthtoken

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/majorcontext/credchain"
)

// Provider wraps an oauth2.TokenSource. The token's access token is
// surfaced as the credential's bearer Token.
//
// Not registered with the source registry: a token source is a live
// object, so callers construct this provider directly and add it to a
// chain themselves.
type Provider struct {
	name string
	src  oauth2.TokenSource
}

var _ credchain.Provider = (*Provider)(nil)

// New wraps src as a chain source under the given name.
func New(name string, src oauth2.TokenSource) *Provider {
	return &Provider{name: name, src: src}
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return p.name
}

// Retrieve obtains a token from the wrapped source.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	tok, err := p.src.Token()
	if err != nil {
		return credchain.Credentials{}, fmt.Errorf("obtaining oauth token: %w", err)
	}
	if !tok.Valid() {
		return credchain.Credentials{}, fmt.Errorf("oauth token source returned an invalid token")
	}
	return credchain.Credentials{
		Token:   tok.AccessToken,
		Expires: tok.Expiry,
		Source:  p.name,
	}, nil
}
