package location

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// loadAWSConfig returns the default AWS configuration, or one for a local
// emulator with static credentials when endpointVar is set
func loadAWSConfig(ctx context.Context, endpointVar, localRegion string) (aws.Config, string, error) {
	endpoint := os.Getenv(endpointVar)
	if endpoint == "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, "", fmt.Errorf("loading AWS config: %w", err)
		}
		return cfg, "", nil
	}

	log.Debug().Str("endpoint", endpoint).Str("variable", endpointVar).Msg("Using local AWS endpoint")
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(localRegion),
		config.WithClientLogMode(aws.LogRetries),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		return aws.Config{}, "", fmt.Errorf("loading local AWS config: %w", err)
	}
	return cfg, endpoint, nil
}

// NewDynamoClient creates a DynamoDB client, pointed at DYNAMODB_ENDPOINT when set
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, endpoint, err := loadAWSConfig(ctx, "DYNAMODB_ENDPOINT", "local")
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// NewS3Client creates an S3 client, pointed at S3_ENDPOINT with path-style addressing when set
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, endpoint, err := loadAWSConfig(ctx, "S3_ENDPOINT", "us-east-1")
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
