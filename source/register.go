// Package source provides explicit registration of all built-in
// credential sources.
//
// Import this package to ensure every registry-constructible source is
// registered. Each source's init() function handles its own
// registration.
package source

import (
	// Import all sources to trigger their init() registration.
	_ "github.com/majorcontext/credchain/source/appsettings"     // registers the environment source
	_ "github.com/majorcontext/credchain/source/assumerole"      // registers the assume-role source
	_ "github.com/majorcontext/credchain/source/envcreds"        // registers the system-environment source
	_ "github.com/majorcontext/credchain/source/instanceprofile" // registers the instance-profile source
	_ "github.com/majorcontext/credchain/source/keyring"         // registers the keyring source
	_ "github.com/majorcontext/credchain/source/secretsmanager"  // registers the secrets-manager source
)

// RegisterAll is a no-op provided for explicit registration semantics.
// All sources self-register via init() when this package is imported.
// This function exists so callers can write source.RegisterAll() to make
// the registration explicit rather than relying on blank import side
// effects.
func RegisterAll() {
	// Sources register themselves via init() on import.
}
