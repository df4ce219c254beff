package credchain

import (
	"fmt"
	"strings"
)

// DuplicateProviderError is returned by Add when a provider with the
// same name is already registered on the chain.
type DuplicateProviderError struct {
	Name string
}

func (e *DuplicateProviderError) Error() string {
	return fmt.Sprintf("provider %q already registered", e.Name)
}

// AuthenticationError is returned by Resolve when every provider in the
// chain failed (or the chain was empty). Attempts holds the per-provider
// errors in try order, each wrapped with the provider name.
type AuthenticationError struct {
	Attempts []error
}

func (e *AuthenticationError) Error() string {
	if len(e.Attempts) == 0 {
		return "no credentials found"
	}
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("no credentials found: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes the per-provider errors to errors.Is and errors.As.
func (e *AuthenticationError) Unwrap() []error {
	return e.Attempts
}
