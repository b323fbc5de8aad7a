package attendance

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MIMEJPEG is the media type of captured frames.
const MIMEJPEG = "image/jpeg"

// EncodeDataURI embeds data as a base64 data URI.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its media type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, &ValidationError{Field: "image", Reason: "not a data URI"}
	}
	header, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, &ValidationError{Field: "image", Reason: "data URI has no payload"}
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, &ValidationError{Field: "image", Reason: "data URI is not base64 encoded"}
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, &ValidationError{Field: "image", Reason: fmt.Sprintf("invalid base64: %v", err)}
	}
	return mimeType, data, nil
}
