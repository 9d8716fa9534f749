// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package collection

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RemoteServiceError is any failure returned by the collection, either at the
// transport level (Err set) or as a non-2xx HTTP answer (StatusCode set).
type RemoteServiceError struct {
	Op         string
	Index      string
	StatusCode int
	Type       string
	Reason     string
	Err        error
}

func (e *RemoteServiceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Index != "" {
		b.WriteString(" index ")
		b.WriteString(e.Index)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
		return b.String()
	}
	fmt.Fprintf(&b, ": status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Type != "" {
		fmt.Fprintf(&b, ": %s", e.Type)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// IsAlreadyExists reports whether err is a create rejected because the index
// is already there.
func IsAlreadyExists(err error) bool {
	var remote *RemoteServiceError
	if !errors.As(err, &remote) {
		return false
	}
	return remote.Type == "resource_already_exists_exception"
}

// IsNotFound reports whether err is a 404 answer from the collection.
func IsNotFound(err error) bool {
	var remote *RemoteServiceError
	if !errors.As(err, &remote) {
		return false
	}
	return remote.StatusCode == http.StatusNotFound
}
