// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/endpoint"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/props"
)

// ErrInvalidRequest is matched by every RequestError.
var ErrInvalidRequest = errors.New("invalid request")

// RequestError reports a custom resource event that cannot be acted on.
type RequestError struct {
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Reason, e.Err)
	}
	return "invalid request: " + e.Reason
}

func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Request is the validated form of a custom resource event.
type Request struct {
	Type               cfn.RequestType
	Collection         *endpoint.Collection
	IndexName          string
	LogicalResourceID  string
	PhysicalResourceID string

	// PreviousIndexName is the index named by the old properties of an update.
	PreviousIndexName string
}

// Renamed reports whether an update points the resource at a different index.
func (r *Request) Renamed() bool {
	return r.Type == cfn.RequestUpdate && r.PreviousIndexName != "" && r.PreviousIndexName != r.IndexName
}

// ResourceID is the identifier echoed back to CloudFormation. It stays stable
// across updates unless the index is renamed; a new ID then makes
// CloudFormation delete the old index during cleanup.
func (r *Request) ResourceID() string {
	if r.Renamed() {
		return r.LogicalResourceID + "/" + r.IndexName
	}
	if r.PhysicalResourceID != "" {
		return r.PhysicalResourceID
	}
	return r.LogicalResourceID
}

func ParseRequest(event cfn.Event) (*Request, error) {
	switch event.RequestType {
	case cfn.RequestCreate, cfn.RequestUpdate, cfn.RequestDelete:
	default:
		return nil, &RequestError{Reason: fmt.Sprintf("unsupported request type %q", event.RequestType)}
	}

	rawEndpoint, err := props.GetStringProperty(event.ResourceProperties, props.CollectionEndpoint)
	if err != nil {
		return nil, &RequestError{Reason: "resource properties", Err: err}
	}
	indexName, err := props.GetStringProperty(event.ResourceProperties, props.VectorIndexName)
	if err != nil {
		return nil, &RequestError{Reason: "resource properties", Err: err}
	}
	if err := validateIndexName(indexName); err != nil {
		return nil, &RequestError{Reason: "resource properties", Err: err}
	}

	collection, err := endpoint.Parse(rawEndpoint)
	if err != nil {
		return nil, &RequestError{Reason: "resource properties", Err: err}
	}

	req := &Request{
		Type:               event.RequestType,
		Collection:         collection,
		IndexName:          indexName,
		LogicalResourceID:  event.LogicalResourceID,
		PhysicalResourceID: event.PhysicalResourceID,
	}
	if event.RequestType == cfn.RequestUpdate {
		if previous, err := props.GetStringProperty(event.OldResourceProperties, props.VectorIndexName); err == nil {
			req.PreviousIndexName = previous
		}
	}
	return req, nil
}

// validateIndexName applies the OpenSearch index naming rules.
func validateIndexName(name string) error {
	if name != strings.ToLower(name) {
		return fmt.Errorf("index name %q must be lowercase", name)
	}
	if strings.ContainsAny(name, ` \/*?"<>|,#:`) {
		return fmt.Errorf("index name %q contains an invalid character", name)
	}
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "+") {
		return fmt.Errorf("index name %q must not start with _, - or +", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("index name %q is reserved", name)
	}
	if len(name) > 255 {
		return fmt.Errorf("index name is longer than 255 bytes")
	}
	return nil
}
