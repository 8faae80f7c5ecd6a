// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// validateOrigin validates a CORS origin: "*" or a scheme://host[:port]
// with no path, query or fragment.
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}

	parsedURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS origin %q failed to parse: %w", origin, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("CORS origin %q scheme must be http or https", origin)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("CORS origin %q host is required", origin)
	}

	if parsedURL.Path != "" || parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("CORS origin %q must not contain a path, query or fragment", origin)
	}

	return nil
}

// validateHostPort validates a host:port address such as a Redis endpoint.
func validateHostPort(addr, fieldName string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s must be host:port, got %q: %w", fieldName, addr, err)
	}
	if host == "" {
		return fmt.Errorf("%s host is required, got %q", fieldName, addr)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%s port must be 1-65535, got %q", fieldName, port)
	}
	return nil
}
