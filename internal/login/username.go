// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"strings"

	"github.com/abcwallet/abc-core/internal/abcerr"
)

// NormalizeUsername trims leading/trailing whitespace, collapses internal
// runs of spaces to a single ASCII space, lower-cases A-Z, and rejects
// any character outside the printable ASCII range U+0020..U+007E.
// Normalization is idempotent.
func NormalizeUsername(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(trimmed))
	lastWasSpace := false
	for _, r := range trimmed {
		if r < 0x20 || r > 0x7e {
			return "", abcerr.New(abcerr.NotSupported, "username contains an unsupported character %q", r)
		}
		if r == ' ' {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
		} else {
			lastWasSpace = false
		}
		if 'A' <= r && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
