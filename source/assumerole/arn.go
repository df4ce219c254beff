package assumerole

import (
	"fmt"
	"strings"
)

// ValidateRoleARN checks that arn is a well-formed IAM role ARN.
// ARN format: arn:PARTITION:iam::ACCOUNT_ID:role/ROLE_NAME
// Supported partitions: aws, aws-cn, aws-us-gov
func ValidateRoleARN(arn string) error {
	if arn == "" {
		return fmt.Errorf("no role ARN configured (set CREDCHAIN_ROLE_ARN)")
	}

	parts := strings.Split(arn, ":")
	if len(parts) != 6 {
		return fmt.Errorf("invalid ARN format: expected 6 colon-separated parts, got %d", len(parts))
	}

	prefix, partition, service, _, account, resource := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]

	if prefix != "arn" {
		return fmt.Errorf("invalid ARN: must start with 'arn:'")
	}

	switch partition {
	case "aws", "aws-cn", "aws-us-gov":
	default:
		return fmt.Errorf("invalid ARN partition: %s (expected aws, aws-cn, or aws-us-gov)", partition)
	}

	if service != "iam" {
		return fmt.Errorf("invalid ARN: must be an IAM ARN (got %s)", service)
	}

	if account == "" {
		return fmt.Errorf("invalid ARN: account ID is required")
	}

	if !strings.HasPrefix(resource, "role/") {
		return fmt.Errorf("invalid ARN: must be a role ARN (got %s)", resource)
	}

	if strings.TrimPrefix(resource, "role/") == "" {
		return fmt.Errorf("invalid ARN: role name is required")
	}

	return nil
}
