// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Command object-events logs S3 object creation notifications for the
// knowledge base data bucket.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/logging"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/objectevents"
)

func main() {
	lambda.Start(objectevents.NewHandler(logging.Setup()).Handle)
}
