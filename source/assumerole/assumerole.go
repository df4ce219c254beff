// Package assumerole produces temporary credentials by assuming an IAM
// role through STS.
package assumerole

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/majorcontext/credchain"
)

// Name is the chain identifier for this source.
const Name = "assume-role"

// DefaultSessionDuration is used when no duration is configured.
// AWS allows 15 minutes to 12 hours for assumed role sessions.
const DefaultSessionDuration = 15 * time.Minute

// STSAssumeRoler is the STS AssumeRole operation (enables testing).
type STSAssumeRoler interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Provider assumes the configured IAM role and returns the resulting
// session credentials.
type Provider struct {
	// RoleARN is the IAM role to assume.
	RoleARN string
	// ExternalID is an optional external id for the AssumeRole call.
	ExternalID string
	// Region overrides the region used to build the STS client.
	Region string
	// Duration is the session duration; zero means DefaultSessionDuration.
	Duration time.Duration

	// mu guards client; a chain may resolve the same provider from
	// multiple goroutines.
	mu     sync.Mutex
	client STSAssumeRoler
}

var _ credchain.Provider = (*Provider)(nil)

// New creates an assume-role source for the given role ARN.
func New(roleARN string) *Provider {
	return &Provider{RoleARN: roleARN}
}

func init() {
	credchain.Register(Name, func() (credchain.Provider, error) {
		p := New(os.Getenv("CREDCHAIN_ROLE_ARN"))
		p.ExternalID = os.Getenv("CREDCHAIN_EXTERNAL_ID")
		p.Region = os.Getenv("CREDCHAIN_REGION")
		if d := os.Getenv("CREDCHAIN_SESSION_DURATION"); d != "" {
			dur, err := time.ParseDuration(d)
			if err != nil {
				return nil, fmt.Errorf("invalid CREDCHAIN_SESSION_DURATION %q: %w", d, err)
			}
			p.Duration = dur
		}
		return p, nil
	})
}

// SetSTSClient sets a custom STS client (for testing).
func (p *Provider) SetSTSClient(client STSAssumeRoler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// stsClient returns the configured client, building the default one on
// first use.
func (p *Provider) stsClient(ctx context.Context) (STSAssumeRoler, error) {
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
	p.client = sts.NewFromConfig(awsCfg)
	return p.client, nil
}

// Name returns the source identifier.
func (p *Provider) Name() string {
	return Name
}

// Retrieve assumes the configured role and returns its session
// credentials.
func (p *Provider) Retrieve(ctx context.Context) (credchain.Credentials, error) {
	if err := ValidateRoleARN(p.RoleARN); err != nil {
		return credchain.Credentials{}, err
	}
	duration, err := p.sessionDuration()
	if err != nil {
		return credchain.Credentials{}, err
	}

	client, err := p.stsClient(ctx)
	if err != nil {
		return credchain.Credentials{}, err
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(p.RoleARN),
		RoleSessionName: aws.String(fmt.Sprintf("credchain-%d", time.Now().Unix())),
		DurationSeconds: aws.Int32(int32(duration.Seconds())),
	}
	if p.ExternalID != "" {
		input.ExternalId = aws.String(p.ExternalID)
	}

	result, err := client.AssumeRole(ctx, input)
	if err != nil {
		return credchain.Credentials{}, fmt.Errorf("assuming role %s: %w", p.RoleARN, err)
	}
	if result.Credentials == nil {
		return credchain.Credentials{}, fmt.Errorf("AWS returned empty credentials for role %s", p.RoleARN)
	}

	return credchain.Credentials{
		AccessKeyID:     aws.ToString(result.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(result.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(result.Credentials.SessionToken),
		Expires:         aws.ToTime(result.Credentials.Expiration),
		Source:          Name,
	}, nil
}

func (p *Provider) sessionDuration() (time.Duration, error) {
	if p.Duration == 0 {
		return DefaultSessionDuration, nil
	}
	if p.Duration < 15*time.Minute {
		return 0, fmt.Errorf("session duration %v is less than minimum 15m", p.Duration)
	}
	if p.Duration > 12*time.Hour {
		return 0, fmt.Errorf("session duration %v exceeds maximum 12h", p.Duration)
	}
	return p.Duration, nil
}
