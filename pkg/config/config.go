// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go/logging"
)

// DefaultRegion is used when neither the environment, the collection endpoint
// nor the SDK default chain yield a region.
const DefaultRegion = "us-east-2"

// Service is the SigV4 signing name of OpenSearch Serverless.
const Service = "aoss"

const (
	DefaultMaxAttempts = 20
	DefaultBaseDelay   = 5 * time.Second
	DefaultMaxDelay    = 120 * time.Second
)

type Readiness struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type Config struct {
	Region    string
	Profile   string
	Readiness Readiness
}

// Default returns the configuration used when no environment overrides are set.
func Default() *Config {
	return &Config{
		Readiness: Readiness{
			MaxAttempts: DefaultMaxAttempts,
			BaseDelay:   DefaultBaseDelay,
			MaxDelay:    DefaultMaxDelay,
		},
	}
}

// FromEnv builds a Config from the Lambda environment. Unset variables keep
// their defaults; malformed ones are reported.
func FromEnv() (*Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup("COLLECTION_REGION"); ok {
		cfg.Region = v
	}
	if v, ok := lookup("AWS_PROFILE"); ok {
		cfg.Profile = v
	}

	if v, ok := lookup("READINESS_MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("READINESS_MAX_ATTEMPTS must be a positive integer, got %q", v)
		}
		cfg.Readiness.MaxAttempts = n
	}
	if v, ok := lookup("READINESS_BASE_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("READINESS_BASE_DELAY must be a positive duration, got %q", v)
		}
		cfg.Readiness.BaseDelay = d
	}
	if v, ok := lookup("READINESS_MAX_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("READINESS_MAX_DELAY must be a positive duration, got %q", v)
		}
		cfg.Readiness.MaxDelay = d
	}
	if cfg.Readiness.MaxDelay < cfg.Readiness.BaseDelay {
		return nil, fmt.Errorf("READINESS_MAX_DELAY (%s) is smaller than READINESS_BASE_DELAY (%s)",
			cfg.Readiness.MaxDelay, cfg.Readiness.BaseDelay)
	}

	return cfg, nil
}

// WithRegion returns a copy of c whose Region is region unless c already has one.
func (c *Config) WithRegion(region string) *Config {
	out := *c
	if out.Region == "" {
		out.Region = region
	}
	return &out
}

func (c *Config) ToAwsConfig(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.Profile))
	}
	opts = append(opts, awsconfig.WithLogger(sdkLogger()))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}
	return awsCfg, nil
}

// sdkLogger routes AWS SDK client logging into slog.
func sdkLogger() logging.Logger {
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		if classification == logging.Warn {
			slog.Warn(msg, "source", "aws-sdk")
			return
		}
		slog.Debug(msg, "source", "aws-sdk")
	})
}
