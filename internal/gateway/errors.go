package gateway

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Unexpected Kind = iota
	InvalidInput
	Misconfigured
	UpstreamLoading
	UpstreamUnauthorized
	UpstreamRateLimited
	UpstreamError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid-input"
	case Misconfigured:
		return "misconfigured"
	case UpstreamLoading:
		return "upstream-loading"
	case UpstreamUnauthorized:
		return "upstream-unauthorized"
	case UpstreamRateLimited:
		return "upstream-rate-limited"
	case UpstreamError:
		return "upstream-error"
	default:
		return "unexpected"
	}
}

const (
	MsgPromptRequired   = "Prompt is required"
	MsgMissingToken     = "Missing Hugging Face token"
	MsgModelLoading     = "Model is loading. Please wait 10-20 seconds and try again."
	MsgUnauthorized     = "Invalid API token. Please check your Hugging Face configuration."
	MsgRateLimited      = "Rate limit exceeded. Please wait a moment before trying again."
	MsgModelError       = "Model returned an error response"
	MsgModelUnavailable = "Model is loading or unavailable. Please try again in a moment."
	MsgUnexpected       = "Failed to generate image. Please try again."
)

// GenerationError is the only error Gateway.Generate returns. Status is the
// HTTP status a transport should answer with and Message is safe to show users.
type GenerationError struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.cause
}

func newError(kind Kind, status int, message string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Status: status, Message: message, cause: cause}
}

// AsGenerationError never returns nil for a non-nil err. Errors that did not
// come from the gateway are reported as Unexpected.
func AsGenerationError(err error) *GenerationError {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return newError(Unexpected, http.StatusInternalServerError, MsgUnexpected, err)
}
