// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build integration

package provision

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/endpoint"
)

// TestProvisioner_Integration runs a full create/create/delete/delete cycle
// against the collection in TEST_COLLECTION_ENDPOINT.
func TestProvisioner_Integration(t *testing.T) {
	rawEndpoint := os.Getenv("TEST_COLLECTION_ENDPOINT")
	if rawEndpoint == "" {
		t.Skip("TEST_COLLECTION_ENDPOINT not set")
	}

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.Readiness.MaxAttempts = 5

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	indexName := "it-" + uuid.NewString()
	event := func(requestType cfn.RequestType) cfn.Event {
		return cfn.Event{
			RequestType:       requestType,
			LogicalResourceID: "IntegrationVectorIndex",
			ResourceProperties: map[string]interface{}{
				"CollectionEndpoint": rawEndpoint,
				"VectorIndexName":    indexName,
			},
		}
	}

	p := New(cfg)

	for _, requestType := range []cfn.RequestType{cfn.RequestCreate, cfn.RequestUpdate} {
		_, data, err := p.Handle(ctx, event(requestType))
		require.NoError(t, err, "request type %s", requestType)
		assert.Equal(t, indexName, data["VectorIndexName"])
	}

	collection, err := endpoint.Parse(rawEndpoint)
	require.NoError(t, err)
	index, err := p.connect(ctx, &Request{Collection: collection})
	require.NoError(t, err)
	exists, err := index.Exists(ctx, indexName)
	require.NoError(t, err)
	assert.True(t, exists)

	for i := 0; i < 2; i++ {
		_, _, err := p.Handle(ctx, event(cfn.RequestDelete))
		require.NoError(t, err, "delete attempt %d", i+1)
	}

	exists, err = index.Exists(ctx, indexName)
	require.NoError(t, err)
	assert.False(t, exists)
}
