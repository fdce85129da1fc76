package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNodeNameLength bounds node names accepted from input files and HTTP requests.
const maxNodeNameLength = 256

// ValidateNodeName validates a node name for use in the web.
//
// Names are whitespace-separated tokens in adjacency input, so the rules are:
//   - No empty names
//   - Valid UTF-8 only
//   - No whitespace, control or other non-printable characters
//   - No trailing colon (it separates a source from its neighbors)
//   - Maximum length of 256 bytes
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidNodeName, "node name cannot be empty")
	}

	if len(name) > maxNodeNameLength {
		return New(ErrCodeInvalidNodeName, "node name too long (max %d characters)", maxNodeNameLength)
	}

	if !utf8.ValidString(name) {
		return New(ErrCodeInvalidNodeName, "node name %q is not valid UTF-8", name)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return New(ErrCodeInvalidNodeName, "node name %q contains whitespace or non-printable characters", name)
		}
	}

	if strings.HasSuffix(name, ":") {
		return New(ErrCodeInvalidNodeName, "node name %q cannot end with ':'", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a redis scheme, used for the optional artifact cache.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "URL must use redis or rediss scheme")
	}

	return nil
}
