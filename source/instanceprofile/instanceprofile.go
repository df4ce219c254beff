// Package instanceprofile reads EC2 instance role credentials from the
// instance metadata service.
package instanceprofile

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "instance-profile"

// Provider fetches role credentials attached to the instance profile of
// the EC2 instance the process runs on. Off EC2, the metadata endpoint
// is unreachable and Retrieve fails quickly, letting the chain fall
// through to the next source.
type Provider struct {
	retriever aws.CredentialsProvider
}

var _ credchain.Provider = (*Provider)(nil)

// New creates an instance-profile source backed by the default IMDS
// client.
func New() *Provider {
	return &Provider{
		retriever: ec2rolecreds.New(func(o *ec2rolecreds.Options) {
			o.Client = imds.New(imds.Options{})
		}),
	}
}

func init() {
	credchain.Register(Name, func() (credchain.Provider, error) {
		return New(), nil
	})
}

// SetRetriever replaces the underlying credentials retriever (for testing).
func (p *Provider) SetRetriever(r aws.CredentialsProvider) {
	p.retriever = r
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return Name
}

// Retrieve fetches the instance role credentials from IMDS.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	creds, err := p.retriever.Retrieve(ctx)
	if err != nil {
		return credchain.Credentials{}, fmt.Errorf("no instance profile credentials: %w", err)
	}

	out := credchain.Credentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Source:          Name,
	}
	if creds.CanExpire {
		out.Expires = creds.Expires
	}
	return out, nil
}
