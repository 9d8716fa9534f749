// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/collection"
)

// transientMarkers are the error message fragments a freshly created
// serverless collection returns while it is still coming up.
var transientMarkers = []string{
	"404",
	"notfounderror",
	"not found",
	"connection refused",
	"timeout",
	"unavailable",
	"service unavailable",
	"host is not available",
}

// IsTransient checks whether err means the collection is not reachable yet
// and the call may succeed later. Anything else is treated as fatal.
// E.g. an authorization failure (403) is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var remote *collection.RemoteServiceError
	if errors.As(err, &remote) && remote.Err == nil {
		switch remote.StatusCode {
		case http.StatusNotFound,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	// --- Transport level failures, using the SDK's own classification ---
	if (retry.RetryableConnectionError{}).IsErrorRetryable(err) == aws.TrueTernary {
		return true
	}
	if (retry.TimeouterError{}).IsErrorTimeout(err) == aws.TrueTernary {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
