// Package base64 reads images sent inline as data URLs, e.g.
// "data:image/png;base64,iVBORw0...".
package base64

import (
	"encoding/base64"
	"errors"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURL = errors.New("value is not a base64 data URL")

type DataURL struct {
	ContentType string
	Payload     string
}

// Parse splits a data URL into its media type and encoded payload without
// decoding it.
func Parse(value string) (DataURL, error) {
	if !strings.HasPrefix(value, dataPrefix) {
		return DataURL{}, ErrNotDataURL
	}

	contentType, payload, found := strings.Cut(value[len(dataPrefix):], base64Marker)
	if !found || contentType == "" {
		return DataURL{}, ErrNotDataURL
	}

	return DataURL{ContentType: contentType, Payload: payload}, nil
}

// GetContentType returns the media type of a data URL, or "" when value is not
// one.
func GetContentType(value string) string {
	url, err := Parse(value)
	if err != nil {
		return ""
	}

	return url.ContentType
}

// Size is the decoded byte length of the payload, computed from its encoded
// length so large uploads are never decoded just to be rejected.
func (d DataURL) Size() int {
	padding := len(d.Payload) - len(strings.TrimRight(d.Payload, "="))

	return base64.StdEncoding.DecodedLen(len(d.Payload)) - padding
}

func (d DataURL) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Payload) //nolint:wrapcheck
}
