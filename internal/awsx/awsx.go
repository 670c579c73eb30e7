// Package awsx loads the AWS SDK configuration shared by every client
// in the pipeline, with an optional endpoint override for running
// against a local emulator.
package awsx

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Load resolves the SDK configuration from the environment. When
// AWS_ENDPOINT_URL is set, every client is pointed at that endpoint and
// static development credentials are used, so the pipeline can run
// against LocalStack-style emulators without real infrastructure.
func Load(ctx context.Context) (aws.Config, error) {
	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithBaseEndpoint(endpoint),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				envOr("AWS_ACCESS_KEY_ID", "test"),
				envOr("AWS_SECRET_ACCESS_KEY", "test"),
				"",
			)),
		)
	}
	return config.LoadDefaultConfig(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
