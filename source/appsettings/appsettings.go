// Package appsettings reads credentials from the application settings
// file, the file-based analogue of environment configuration. The file
// holds one or more named profiles:
//
//	default:
//	  access_key_id: AKIA...
//	  secret_access_key: ...
//	  session_token: ...
//	ci:
//	  access_key_id: AKIA...
//	  secret_access_key: ...
package appsettings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "environment"

// DefaultProfile is used when no profile is selected.
const DefaultProfile = "default"

// profile is one named credential block in the settings file.
type profile struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

// Provider reads credentials from a yaml settings file.
type Provider struct {
	// Path is the settings file location. Empty means the default:
	// $CREDCHAIN_SETTINGS, falling back to ~/.credchain/credentials.yaml.
	Path string

	// Profile selects a named block. Empty means $CREDCHAIN_PROFILE,
	// falling back to "default".
	Profile string
}

var _ credchain.Provider = (*Provider)(nil)

// New creates an environment source using the default path and profile
// resolution.
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

// Retrieve loads the settings file and returns the selected profile's
// credentials.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	path, err := p.path()
	if err != nil {
		return credchain.Credentials{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return credchain.Credentials{}, fmt.Errorf("reading settings file: %w", err)
	}

	profiles := make(map[string]profile)
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return credchain.Credentials{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	name := p.profileName()
	prof, ok := profiles[name]
	if !ok {
		return credchain.Credentials{}, fmt.Errorf("profile %q not found in %s", name, path)
	}
	if prof.AccessKeyID == "" || prof.SecretAccessKey == "" {
		return credchain.Credentials{}, fmt.Errorf("profile %q in %s is missing access_key_id or secret_access_key", name, path)
	}

	return credchain.Credentials{
		AccessKeyID:     prof.AccessKeyID,
		SecretAccessKey: prof.SecretAccessKey,
		SessionToken:    prof.SessionToken,
		Source:          Name,
	}, nil
}

func (p *Provider) path() (string, error) {
	if p.Path != "" {
		return p.Path, nil
	}
	if path := os.Getenv("CREDCHAIN_SETTINGS"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating settings file: %w", err)
	}
	return filepath.Join(home, ".credchain", "credentials.yaml"), nil
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
