// Package bearer parses RFC 6750 style Authorization header values.
package bearer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"idsync/internal/domain"
)

// Scheme is the only accepted authorization scheme. Matching is case-sensitive.
const Scheme = "Bearer"

// Extract returns the token carried by an Authorization header value.
//
// The header must consist of exactly two segments separated by a single
// whitespace character: the literal scheme and a non-empty token. Headers
// with extra segments are rejected rather than truncated.
func Extract(header string) (string, error) {
	if header == "" {
		return "", domain.NewFailure(domain.FailureMissingHeader, nil)
	}

	segments := splitOnWhitespace(header)
	if len(segments) != 2 || segments[0] != Scheme {
		return "", domain.NewFailure(domain.FailureInvalidFormat, nil)
	}

	token := strings.TrimSpace(segments[1])
	if token == "" {
		return "", domain.NewFailure(domain.FailureEmptyToken, nil)
	}
	return token, nil
}

// splitOnWhitespace splits s at every whitespace rune and keeps empty
// segments, so "Bearer " yields two segments and "Bearer  x" yields three.
func splitOnWhitespace(s string) []string {
	var segments []string
	start := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			segments = append(segments, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(segments, s[start:])
}
