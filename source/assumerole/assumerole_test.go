package assumerole

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSTS records the AssumeRole input and returns canned credentials.
type fakeSTS struct {
	input *sts.AssumeRoleInput
	out   *sts.AssumeRoleOutput
	err   error
}

func (f *fakeSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	f.input = params
	return f.out, f.err
}

const testRoleARN = "arn:aws:iam::123456789012:role/Deploy"

func TestProvider_Name(t *testing.T) {
	assert.Equal(t, "assume-role", New(testRoleARN).Name())
}

func TestRetrieve(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	fake := &fakeSTS{out: &sts.AssumeRoleOutput{
		Credentials: &types.Credentials{
			AccessKeyId:     aws.String("ASIAEXAMPLE"),
			SecretAccessKey: aws.String("stssecret"),
			SessionToken:    aws.String("ststoken"),
			Expiration:      aws.Time(expiry),
		},
	}}

	p := New(testRoleARN)
	p.ExternalID = "ext-1"
	p.SetSTSClient(fake)

	creds, err := p.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ASIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "stssecret", creds.SecretAccessKey)
	assert.Equal(t, "ststoken", creds.SessionToken)
	assert.True(t, creds.Expires.Equal(expiry))
	assert.Equal(t, Name, creds.Source)

	require.NotNil(t, fake.input)
	assert.Equal(t, testRoleARN, aws.ToString(fake.input.RoleArn))
	assert.Equal(t, "ext-1", aws.ToString(fake.input.ExternalId))
	assert.Equal(t, int32(DefaultSessionDuration.Seconds()), aws.ToInt32(fake.input.DurationSeconds))
	assert.Contains(t, aws.ToString(fake.input.RoleSessionName), "credchain-")
}

func TestRetrieveNoRoleARN(t *testing.T) {
	p := New("")
	p.SetSTSClient(&fakeSTS{})
	_, err := p.Retrieve(context.Background())
	assert.ErrorContains(t, err, "no role ARN configured")
}

func TestRetrieveEmptyCredentials(t *testing.T) {
	p := New(testRoleARN)
	p.SetSTSClient(&fakeSTS{out: &sts.AssumeRoleOutput{}})
	_, err := p.Retrieve(context.Background())
	assert.ErrorContains(t, err, "empty credentials")
}

// staticSTS returns canned credentials without recording the input, so
// it is safe to call from multiple goroutines.
type staticSTS struct {
	out *sts.AssumeRoleOutput
}

func (s *staticSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	return s.out, nil
}

func TestRetrieveConcurrent(t *testing.T) {
	fake := &staticSTS{out: &sts.AssumeRoleOutput{
		Credentials: &types.Credentials{
			AccessKeyId:     aws.String("ASIAEXAMPLE"),
			SecretAccessKey: aws.String("stssecret"),
			SessionToken:    aws.String("ststoken"),
			Expiration:      aws.Time(time.Now().Add(time.Hour)),
		},
	}}

	p := New(testRoleARN)
	p.SetSTSClient(fake)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.SetSTSClient(fake)
		}()
		go func() {
			defer wg.Done()
			creds, err := p.Retrieve(context.Background())
			if err == nil && creds.AccessKeyID != "ASIAEXAMPLE" {
				err = fmt.Errorf("unexpected access key %q", creds.AccessKeyID)
			}
			errs[i] = err
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestSessionDurationBounds(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		wantErr  string
	}{
		{"default", 0, ""},
		{"minimum", 15 * time.Minute, ""},
		{"maximum", 12 * time.Hour, ""},
		{"too short", time.Minute, "less than minimum"},
		{"too long", 13 * time.Hour, "exceeds maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(testRoleARN)
			p.Duration = tt.duration
			p.SetSTSClient(&fakeSTS{out: &sts.AssumeRoleOutput{
				Credentials: &types.Credentials{
					AccessKeyId:     aws.String("k"),
					SecretAccessKey: aws.String("s"),
					SessionToken:    aws.String("t"),
					Expiration:      aws.Time(time.Now().Add(time.Hour)),
				},
			}})
			_, err := p.Retrieve(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoleARN(t *testing.T) {
	tests := []struct {
		name    string
		arn     string
		wantErr bool
	}{
		{"valid", "arn:aws:iam::123456789012:role/Test", false},
		{"valid gov cloud", "arn:aws-us-gov:iam::123456789012:role/Test", false},
		{"valid china", "arn:aws-cn:iam::123456789012:role/Test", false},
		{"empty", "", true},
		{"wrong part count", "arn:aws:iam:role/Test", true},
		{"wrong prefix", "nra:aws:iam::123456789012:role/Test", true},
		{"bad partition", "arn:gcp:iam::123456789012:role/Test", true},
		{"not iam", "arn:aws:s3::123456789012:role/Test", true},
		{"missing account", "arn:aws:iam:::role/Test", true},
		{"not a role", "arn:aws:iam::123456789012:user/Test", true},
		{"empty role name", "arn:aws:iam::123456789012:role/", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoleARN(tt.arn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
