package credchain

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// defaultProviders is the fixed default try order.
var defaultProviders = []string{
	"instance-profile",
	"environment",
	"system-environment",
}

// DefaultProviders returns the names of the default provider set in try
// order.
func DefaultProviders() []string {
	return slices.Clone(defaultProviders)
}

type entry struct {
	name     string
	provider Provider
}

// Chain is an ordered chain of named credential providers. Resolve tries
// each provider in registration order and returns the first credentials
// produced.
//
// A Chain is safe for concurrent use. Resolve iterates a snapshot of the
// registered providers taken under the lock, so concurrent Add/Remove
// calls cannot disturb an in-flight resolution.
type Chain struct {
	mu      sync.RWMutex
	entries []entry
	logger  *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger that receives per-attempt outcome messages.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty chain.
func New(opts ...Option) *Chain {
	c := &Chain{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault returns a chain seeded with the default provider set:
// instance-profile, environment, system-environment, tried in that order.
//
// The default sources register themselves on import; callers must import
// github.com/majorcontext/credchain/source (or the individual source
// packages) before calling NewDefault.
func NewDefault(opts ...Option) (*Chain, error) {
	c := New(opts...)
	for _, name := range defaultProviders {
		p, err := NewSource(name)
		if err != nil {
			return nil, fmt.Errorf("building default chain: %w", err)
		}
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a provider to the end of the try order. Adding a provider
// whose name is already registered fails with *DuplicateProviderError
// and leaves the existing entry untouched.
func (c *Chain) Add(p Provider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := p.Name()
	for _, e := range c.entries {
		if e.name == name {
			return &DuplicateProviderError{Name: name}
		}
	}
	c.entries = append(c.entries, entry{name: name, provider: p})
	return nil
}

// AddFunc appends a provider backed by fn under the given name.
func (c *Chain) AddFunc(name string, fn func(ctx context.Context) (Credentials, error)) error {
	return c.Add(ProviderFunc(name, fn))
}

// Remove removes the named provider. Removing a name that is not
// registered is a no-op.
func (c *Chain) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = slices.DeleteFunc(c.entries, func(e entry) bool {
		return e.name == name
	})
}

// Clear removes all providers. A subsequent Resolve fails immediately
// with *AuthenticationError.
func (c *Chain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Providers returns the registered provider names in try order.
func (c *Chain) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered providers.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Resolve tries each provider in registration order and returns the
// first credentials produced. Individual provider failures are logged
// and collected; they do not stop the walk. If every provider fails (or
// the chain is empty) Resolve returns *AuthenticationError carrying the
// per-provider errors.
//
// Resolve is stateless: nothing is cached between calls, and every call
// re-invokes the providers fresh.
func (c *Chain) Resolve(ctx context.Context) (Credentials, error) {
	c.mu.RLock()
	entries := slices.Clone(c.entries)
	logger := c.logger
	c.mu.RUnlock()

	var attempts []error
	for _, e := range entries {
		creds, err := e.provider.Retrieve(ctx)
		if err != nil {
			logger.Debug(fmt.Sprintf("(%s) %v", e.name, err), "provider", e.name)
			attempts = append(attempts, fmt.Errorf("%s: %w", e.name, err))
			continue
		}
		logger.Info(fmt.Sprintf("(%s) Credentials found.", e.name), "provider", e.name)
		return creds, nil
	}

	logger.Warn("No credentials found.")
	return Credentials{}, &AuthenticationError{Attempts: attempts}
}
