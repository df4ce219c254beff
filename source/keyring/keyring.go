// Package keyring reads credentials stored in the OS keyring.
//
// Platform requirements:
//   - macOS: Keychain via the Security framework (works out of the box)
//   - Linux: libsecret (GNOME), kwallet (KDE), or pass (CLI)
//   - Windows: Windows Credential Manager (works out of the box)
//
// Credentials are stored as a JSON payload under the "credchain" service,
// one entry per profile. The store side lives in the credchain CLI
// (`credchain store`); this package is the read side plus the helpers the
// CLI uses.
package keyring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "keyring"

// ServiceName is the default keyring service identifier.
// Can be overridden with the CREDCHAIN_KEYRING_SERVICE environment
// variable for test isolation.
const ServiceName = "credchain"

// DefaultProfile is the keyring account used when no profile is selected.
const DefaultProfile = "default"

type payload struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Token           string `json:"token,omitempty"`
}

// Provider reads credentials from the OS keyring.
type Provider struct {
	// Profile selects the keyring account. Empty means
	// $CREDCHAIN_PROFILE, falling back to "default".
	Profile string
}

var _ credchain.Provider = (*Provider)(nil)

// New creates a keyring source using the default profile resolution.
func New() *Provider {
	return &Provider{}
}

func init() {
	credchain.Register(Name, func() (credchain.Provider, error) {
		return New(), nil
	})
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return Name
}

// Retrieve reads and decodes the keyring entry for the selected profile.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	profile := p.profileName()
	raw, err := keyring.Get(serviceName(), profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return credchain.Credentials{}, fmt.Errorf("no credentials stored for profile %q", profile)
		}
		return credchain.Credentials{}, fmt.Errorf("reading keyring: %w", err)
	}

	var pl payload
	if err := json.Unmarshal([]byte(raw), &pl); err != nil {
		return credchain.Credentials{}, fmt.Errorf("decoding keyring entry for profile %q: %w", profile, err)
	}

	return credchain.Credentials{
		AccessKeyID:     pl.AccessKeyID,
		SecretAccessKey: pl.SecretAccessKey,
		SessionToken:    pl.SessionToken,
		Token:           pl.Token,
		Source:          Name,
	}, nil
}

// Store writes credentials to the keyring under the given profile.
func Store(profile string, creds credchain.Credentials) error {
	if profile == "" {
		profile = DefaultProfile
	}
	data, err := json.Marshal(payload{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Token:           creds.Token,
	})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := keyring.Set(serviceName(), profile, string(data)); err != nil {
		return fmt.Errorf("writing keyring: %w", err)
	}
	return nil
}

// Erase removes the keyring entry for the given profile. Erasing an
// absent entry is a no-op.
func Erase(profile string) error {
	if profile == "" {
		profile = DefaultProfile
	}
	err := keyring.Delete(serviceName(), profile)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("removing keyring entry: %w", err)
	}
	return nil
}

func (p *Provider) profileName() string {
	if p.Profile != "" {
		return p.Profile
	}
	if name := os.Getenv("CREDCHAIN_PROFILE"); name != "" {
		return name
	}
	return DefaultProfile
}

func serviceName() string {
	if name := os.Getenv("CREDCHAIN_KEYRING_SERVICE"); name != "" {
		return name
	}
	return ServiceName
}
