// Package decode converts transport-encoded blob content into plain text.
package decode

import (
	"encoding/base64"
	"fmt"
	"strings"

	appErrors "github.com/codemetry/codemetry/internal/errors"
)

// Base64 is the only encoding the provider currently uses for blobs
const Base64 = "base64"

// Content decodes transport-encoded blob content.
//
// The provider newline-delimits independently encoded segments of large
// blobs, so each line is decoded on its own and the results concatenated.
// Decoding the joined string instead would misalign the base64 quantum
// boundaries at every chunk edge.
func Content(content, encoding string) (string, error) {
	switch encoding {
	case Base64:
		return decodeBase64Chunks(content)
	default:
		return "", fmt.Errorf("%w: %q", appErrors.ErrUnsupportedEncoding, encoding)
	}
}

func decodeBase64Chunks(content string) (string, error) {
	var out strings.Builder

	for _, chunk := range strings.Split(content, "\n") {
		if chunk == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(chunk)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64 chunk: %w", err)
		}
		out.Write(decoded)
	}

	return out.String(), nil
}
