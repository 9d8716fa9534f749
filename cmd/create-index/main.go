// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Command create-index is the CloudFormation custom resource Lambda that
// manages the Bedrock Knowledge Base vector index in an OpenSearch Serverless
// collection.
package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/logging"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/provision"
)

func main() {
	logging.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	lambda.Start(cfn.LambdaWrap(provision.New(cfg).Handle))
}
