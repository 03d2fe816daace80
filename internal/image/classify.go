package image

import (
	"net/http"
	"strings"
)

// Classification is how an upstream response is interpreted. The upstream uses the
// same channel for images, loading notices and errors, so the declared content type
// decides rather than the status alone.
type Classification int

const (
	FailureStatus Classification = iota
	JSONPayload
	BinaryPayload
)

func (c Classification) String() string {
	switch c {
	case FailureStatus:
		return "failure-status"
	case JSONPayload:
		return "json-payload"
	default:
		return "binary-payload"
	}
}

func Classify(statusCode int, contentType string) Classification {
	switch {
	case statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices:
		return FailureStatus
	case strings.Contains(contentType, "application/json"):
		return JSONPayload
	default:
		return BinaryPayload
	}
}
