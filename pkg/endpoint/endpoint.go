// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package endpoint

import (
	"fmt"
	"net/url"
	"strings"
)

const serverlessSuffix = ".aoss.amazonaws.com"

// Collection describes an OpenSearch Serverless collection endpoint.
type Collection struct {
	// Address is the normalized https://host form passed to the client.
	Address string
	Host    string
	// ID and Region are only set for hosts of the form <id>.<region>.aoss.amazonaws.com.
	ID     string
	Region string
}

// Parse accepts "https://host[:port]" or a bare host and normalizes it.
// Port 443 is implied; any other port is kept.
func Parse(raw string) (*Collection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("collection endpoint is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid collection endpoint %q: %w", raw, err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("collection endpoint %q must use https", raw)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("collection endpoint %q has no host", raw)
	}

	address := "https://" + host
	if port := u.Port(); port != "" && port != "443" {
		address += ":" + port
	}

	c := &Collection{Address: address, Host: host}
	if strings.HasSuffix(host, serverlessSuffix) {
		frags := strings.Split(strings.TrimSuffix(host, serverlessSuffix), ".")
		if len(frags) == 2 {
			c.ID, c.Region = frags[0], frags[1]
		}
	}
	return c, nil
}
