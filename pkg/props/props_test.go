// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStringProperty(t *testing.T) {
	properties := map[string]interface{}{
		"VectorIndexName": " kb-index ",
		"Dimension":       float64(1024),
		"Empty":           "",
	}

	v, err := GetStringProperty(properties, VectorIndexName)
	assert.NoError(t, err)
	assert.Equal(t, "kb-index", v)

	_, err = GetStringProperty(properties, CollectionEndpoint)
	assert.ErrorContains(t, err, "required property CollectionEndpoint not found")

	_, err = GetStringProperty(properties, "Dimension")
	assert.ErrorContains(t, err, "is not a string")

	_, err = GetStringProperty(properties, "Empty")
	assert.ErrorContains(t, err, "must not be empty")

	_, err = GetStringProperty(nil, VectorIndexName)
	assert.Error(t, err)
}
