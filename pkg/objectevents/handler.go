// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package objectevents

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// Response is the fixed acknowledgment returned to the invoker.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

var success = Response{StatusCode: 200, Body: "Success"}

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Handle logs one info line per S3 record. A record without a bucket name or
// object key is rejected and the invocation fails.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	h.logger.Debug("S3 event received", "records", len(event.Records))

	for i, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key
		if bucket == "" || key == "" {
			return Response{}, fmt.Errorf("record %d: missing bucket name or object key", i)
		}

		attrs := []any{
			"bucket", bucket,
			"key", key,
			"event_name", record.EventName,
			"size", record.S3.Object.Size,
		}
		// Keys arrive URL encoded, e.g. spaces as '+'.
		if decoded, err := url.QueryUnescape(key); err == nil && decoded != key {
			attrs = append(attrs, "decoded_key", decoded)
		}
		h.logger.Info("New object created", attrs...)
	}

	return success, nil
}
