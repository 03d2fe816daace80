package image

import "fmt"

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// ModelError is returned when the upstream answers 2xx but with a JSON body
// instead of image bytes. Parsed is false when the body was not valid JSON.
type ModelError struct {
	Message string
	Parsed  bool
}

func (e *ModelError) Error() string {
	if e.Message == "" {
		return "upstream returned a json payload instead of an image"
	}
	return "upstream model error: " + e.Message
}
