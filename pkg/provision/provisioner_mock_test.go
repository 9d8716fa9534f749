// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package provision

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/stretchr/testify/mock"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/readiness"
)

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockIndex) Exists(ctx context.Context, index string) (bool, error) {
	args := m.Called(ctx, index)
	return args.Bool(0), args.Error(1)
}

func (m *mockIndex) Create(ctx context.Context, index string, definition []byte) error {
	args := m.Called(ctx, index, definition)
	return args.Error(0)
}

func (m *mockIndex) Delete(ctx context.Context, index string) error {
	args := m.Called(ctx, index)
	return args.Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvisioner(index Index, maxAttempts int) *Provisioner {
	return &Provisioner{
		cfg: config.Default(),
		connect: func(ctx context.Context, req *Request) (Index, error) {
			return index, nil
		},
		waiter: &readiness.Poller{
			MaxAttempts: maxAttempts,
			BaseDelay:   time.Millisecond,
			MaxDelay:    2 * time.Millisecond,
			Rand:        func() float64 { return 0 },
			Logger:      quietLogger(),
		},
		logger: quietLogger(),
	}
}

func testEvent(requestType cfn.RequestType) cfn.Event {
	return cfn.Event{
		RequestType:       requestType,
		RequestID:         "req-1",
		StackID:           "arn:aws:cloudformation:us-east-2:123456789012:stack/kb/1",
		ResourceType:      "Custom::VectorIndex",
		LogicalResourceID: "VectorIndex",
		ResourceProperties: map[string]interface{}{
			"ServiceToken":       "arn:aws:lambda:us-east-2:123456789012:function:create-index",
			"CollectionEndpoint": "https://abc123.us-east-2.aoss.amazonaws.com",
			"VectorIndexName":    "kb-index",
		},
	}
}
