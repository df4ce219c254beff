// Package envcreds reads credentials from the process environment.
package envcreds

import (
	"context"
	"fmt"
	"os"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "system-environment"

// Provider reads an access key pair from the standard AWS environment
// variables.
type Provider struct{}

var _ credchain.Provider = (*Provider)(nil)

// New creates a system-environment source.
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

// Retrieve reads AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY (with the
// legacy AWS_ACCESS_KEY and AWS_SECRET_KEY spellings as fallbacks) plus
// an optional AWS_SESSION_TOKEN.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	id, idName := firstEnv("AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY")
	if id == "" {
		return credchain.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID not set")
	}
	secret, _ := firstEnv("AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY")
	if secret == "" {
		return credchain.Credentials{}, fmt.Errorf("%s set but AWS_SECRET_ACCESS_KEY missing", idName)
	}

	return credchain.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          Name,
	}, nil
}

// firstEnv returns the value and name of the first non-empty environment
// variable. Returns empty strings if none are set.
func firstEnv(names ...string) (value, name string) {
	for _, n := range names {
		if val := os.Getenv(n); val != "" {
			return val, n
		}
	}
	return "", ""
}
