// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package props

import (
	"fmt"
	"strings"
)

const (
	CollectionEndpoint = "CollectionEndpoint"
	VectorIndexName    = "VectorIndexName"
)

// GetStringProperty safely extracts a non-empty string value from a resource properties map
func GetStringProperty(properties map[string]interface{}, key string) (string, error) {
	if properties == nil {
		return "", fmt.Errorf("required property %s not found: no resource properties", key)
	}
	val, ok := properties[key]
	if !ok {
		return "", fmt.Errorf("required property %s not found", key)
	}
	strVal, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("property %s is not a string", key)
	}
	strVal = strings.TrimSpace(strVal)
	if strVal == "" {
		return "", fmt.Errorf("property %s must not be empty", key)
	}
	return strVal, nil
}
