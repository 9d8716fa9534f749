// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/opensearch-project/opensearch-go/v4"
	requestsigner "github.com/opensearch-project/opensearch-go/v4/signer/awsv2"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
)

// Client talks to a single OpenSearch Serverless collection using SigV4
// signed requests.
type Client struct {
	*opensearch.Client
}

type Options struct {
	// Address is the normalized https://host collection endpoint.
	Address string
	AWS     aws.Config
	// Transport overrides the HTTP round tripper, mainly for tests.
	Transport http.RoundTripper
}

func NewClient(opts Options) (*Client, error) {
	if opts.Address == "" {
		return nil, fmt.Errorf("collection address is required")
	}

	signer, err := requestsigner.NewSignerWithService(opts.AWS, config.Service)
	if err != nil {
		return nil, fmt.Errorf("creating %s request signer: %w", config.Service, err)
	}

	// Retries are owned by the readiness poller, so the transport must not
	// retry on its own.
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    []string{opts.Address},
		Signer:       signer,
		Transport:    opts.Transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating opensearch client for %s: %w", opts.Address, err)
	}

	return &Client{Client: client}, nil
}

// Probe issues a read-only alias listing. It succeeds once the collection
// answers with a 2xx status.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/_alias", nil)
	if err != nil {
		return &RemoteServiceError{Op: "probe", Err: err}
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return remoteError("probe", "", resp)
	}
	return nil
}

// Exists reports whether index is present in the collection.
func (c *Client) Exists(ctx context.Context, index string) (bool, error) {
	resp, err := c.do(ctx, http.MethodHead, indexPath(index), nil)
	if err != nil {
		return false, &RemoteServiceError{Op: "exists", Index: index, Err: err}
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= http.StatusMultipleChoices:
		return false, remoteError("exists", index, resp)
	default:
		return true, nil
	}
}

// Create creates index with the given JSON definition.
func (c *Client) Create(ctx context.Context, index string, definition []byte) error {
	resp, err := c.do(ctx, http.MethodPut, indexPath(index), definition)
	if err != nil {
		return &RemoteServiceError{Op: "create", Index: index, Err: err}
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return remoteError("create", index, resp)
	}
	return nil
}

// Delete removes index from the collection.
func (c *Client) Delete(ctx context.Context, index string) error {
	resp, err := c.do(ctx, http.MethodDelete, indexPath(index), nil)
	if err != nil {
		return &RemoteServiceError{Op: "delete", Index: index, Err: err}
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return remoteError("delete", index, resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.Perform(req)
}

func indexPath(index string) string {
	return "/" + url.PathEscape(index)
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

// errorBody is the standard OpenSearch error envelope.
type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func remoteError(op, index string, resp *http.Response) *RemoteServiceError {
	e := &RemoteServiceError{Op: op, Index: index, StatusCode: resp.StatusCode}
	if resp.Body == nil {
		return e
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return e
	}

	var parsed errorBody
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Type != "" {
		e.Type = parsed.Error.Type
		e.Reason = parsed.Error.Reason
		return e
	}
	e.Reason = string(bytes.TrimSpace(raw))
	return e
}
