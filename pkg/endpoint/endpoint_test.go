// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ServerlessEndpoint(t *testing.T) {
	c, err := Parse("https://abc123xyz.us-east-2.aoss.amazonaws.com")
	require.NoError(t, err)

	assert.Equal(t, "https://abc123xyz.us-east-2.aoss.amazonaws.com", c.Address)
	assert.Equal(t, "abc123xyz", c.ID)
	assert.Equal(t, "us-east-2", c.Region)
}

func TestParse_StripsDefaultPort(t *testing.T) {
	c, err := Parse("https://abc123xyz.eu-west-1.aoss.amazonaws.com:443")
	require.NoError(t, err)

	assert.Equal(t, "https://abc123xyz.eu-west-1.aoss.amazonaws.com", c.Address)
	assert.Equal(t, "eu-west-1", c.Region)
}

func TestParse_BareHostAndCustomPort(t *testing.T) {
	c, err := Parse("search.internal:9200")
	require.NoError(t, err)

	assert.Equal(t, "https://search.internal:9200", c.Address)
	assert.Empty(t, c.ID)
	assert.Empty(t, c.Region)
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "http://abc.us-east-2.aoss.amazonaws.com", "https://"} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}
