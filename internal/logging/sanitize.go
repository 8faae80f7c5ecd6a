// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package logging

import (
	"fmt"
	"strings"
)

// maxLoggedValue bounds user-supplied strings written to logs.
const maxLoggedValue = 256

// SanitizeValue escapes control characters in a user-supplied value and
// truncates it, so that a query string cannot forge log lines.
func SanitizeValue(s string) string {
	truncated := false
	if len(s) > maxLoggedValue {
		s = s[:maxLoggedValue]
		truncated = true
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	if truncated {
		b.WriteString("...")
	}
	return b.String()
}
