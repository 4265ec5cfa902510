package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-api-signup/internal/config"
)

// LoadAWSConfig resolves AWS settings for the given region. Static credentials
// are used when configured; otherwise the default provider chain applies.
func LoadAWSConfig(ctx context.Context, cfg *config.Config, region string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return awsCfg, nil
}

// NewClient creates a DynamoDB client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint so all traffic goes to the local instance.
func NewClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		}
	}), nil
}
