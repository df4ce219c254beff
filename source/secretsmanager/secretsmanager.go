// Package secretsmanager reads a JSON credential payload from AWS
// Secrets Manager. The secret value must look like:
//
//	{"access_key_id": "AKIA...", "secret_access_key": "...", "session_token": "..."}
package secretsmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	sm "github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "secrets-manager"

// SecretGetter is the Secrets Manager GetSecretValue operation (enables
// testing).
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *sm.GetSecretValueInput, optFns ...func(*sm.Options)) (*sm.GetSecretValueOutput, error)
}

type payload struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
}

// Provider fetches credentials stored as a Secrets Manager secret.
type Provider struct {
	// SecretID is the secret name or ARN to read.
	SecretID string
	// Region overrides the region used to build the client.
	Region string

	// mu guards client; a chain may resolve the same provider from
	// multiple goroutines.
	mu     sync.Mutex
	client SecretGetter
}

var _ credchain.Provider = (*Provider)(nil)

// New creates a secrets-manager source for the given secret id.
func New(secretID string) *Provider {
	return &Provider{SecretID: secretID}
}

func init() {
	credchain.Register(Name, func() (credchain.Provider, error) {
		p := New(os.Getenv("CREDCHAIN_SECRET_ID"))
		p.Region = os.Getenv("CREDCHAIN_REGION")
		return p, nil
	})
}

// SetClient sets a custom Secrets Manager client (for testing).
func (p *Provider) SetClient(client SecretGetter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// smClient returns the configured client, building the default one on
// first use.
func (p *Provider) smClient(ctx context.Context) (SecretGetter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	var optFns []func(*config.LoadOptions) error
	if p.Region != "" {
		optFns = append(optFns, config.WithRegion(p.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	p.client = sm.NewFromConfig(awsCfg)
	return p.client, nil
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return Name
}

// Retrieve fetches and decodes the configured secret.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	if p.SecretID == "" {
		return credchain.Credentials{}, fmt.Errorf("no secret configured (set CREDCHAIN_SECRET_ID)")
	}

	client, err := p.smClient(ctx)
	if err != nil {
		return credchain.Credentials{}, err
	}

	out, err := client.GetSecretValue(ctx, &sm.GetSecretValueInput{
		SecretId: aws.String(p.SecretID),
	})
	if err != nil {
		return credchain.Credentials{}, fmt.Errorf("reading secret %s: %w", p.SecretID, err)
	}

	raw := out.SecretBinary
	if out.SecretString != nil {
		raw = []byte(*out.SecretString)
	}
	if len(raw) == 0 {
		return credchain.Credentials{}, fmt.Errorf("secret %s has no value", p.SecretID)
	}

	var pl payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return credchain.Credentials{}, fmt.Errorf("decoding secret %s: %w", p.SecretID, err)
	}
	if pl.AccessKeyID == "" || pl.SecretAccessKey == "" {
		return credchain.Credentials{}, fmt.Errorf("secret %s is missing access_key_id or secret_access_key", p.SecretID)
	}

	return credchain.Credentials{
		AccessKeyID:     pl.AccessKeyID,
		SecretAccessKey: pl.SecretAccessKey,
		SessionToken:    pl.SessionToken,
		Source:          Name,
	}, nil
}
