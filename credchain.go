// Package credchain resolves credentials by walking an ordered chain of
// named providers. Each provider attempts to produce credentials from one
// source (instance profile, settings file, environment variables, and so
// on); the chain returns the first success and reports every attempt
// through an injected logger.
package credchain

import (
	"context"
	"time"
)

// Provider is a single named credential source.
type Provider interface {
	// Name returns the provider identifier (e.g., "instance-profile").
	Name() string

	// Retrieve attempts to produce credentials from this source.
	// It returns an error describing why the source was unavailable
	// (missing environment variables, no instance profile, etc.);
	// such errors are non-fatal to a chain resolution.
	Retrieve(ctx context.Context) (Credentials, error)
}

// Credentials is authentication material produced by a provider.
// The chain treats it as opaque; which fields a provider fills is up to
// the provider. Key-pair sources set AccessKeyID/SecretAccessKey while
// token sources set Token.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Token holds a bearer token for sources that produce one instead
	// of a key pair.
	Token string

	// Expires is the credential expiry, if the source reports one.
	// A zero value means the credentials do not expire.
	Expires time.Time

	// Source is the name of the provider that produced the credentials.
	Source string
}

// HasKeys reports whether c carries an access key pair.
func (c Credentials) HasKeys() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Expired reports whether c has an expiry in the past.
func (c Credentials) Expired() bool {
	return !c.Expires.IsZero() && time.Now().After(c.Expires)
}

type providerFunc struct {
	name string
	fn   func(ctx context.Context) (Credentials, error)
}

func (p providerFunc) Name() string { return p.name }

func (p providerFunc) Retrieve(ctx context.Context) (Credentials, error) { return p.fn(ctx) }

// ProviderFunc adapts a function to the Provider interface under the
// given name.
func ProviderFunc(name string, fn func(ctx context.Context) (Credentials, error)) Provider {
	return providerFunc{name: name, fn: fn}
}
