// Package gateway turns a prompt into either an image data URI or a
// GenerationError carrying the status and message a client should see.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmorgan81/artistry/internal/image"
	"github.com/dmorgan81/artistry/internal/log"
)

type ImageResult struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

type Gateway struct {
	token     string
	generator image.Generator
}

func New(token string, generator image.Generator) *Gateway {
	return &Gateway{token: token, generator: generator}
}

// Generate validates the prompt and the credential before making exactly one
// upstream call. Every returned error is a *GenerationError.
func (g *Gateway) Generate(ctx context.Context, prompt string) (*ImageResult, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("gateway")

	if strings.TrimSpace(prompt) == "" {
		log.Info("rejecting empty prompt")
		return nil, newError(InvalidInput, http.StatusBadRequest, MsgPromptRequired, nil)
	}
	if g.token == "" {
		log.Error("no upstream token configured")
		return nil, newError(Misconfigured, http.StatusInternalServerError, MsgMissingToken, nil)
	}

	img, err := g.generator.Generate(ctx, g.token, image.Params{
		Inputs:     prompt,
		Parameters: image.DefaultParameters(),
	})
	if err != nil {
		genErr := classify(err)
		log.Error("generation failed", "kind", genErr.Kind.String(), "status", genErr.Status, "error", err)
		return nil, genErr
	}

	log.Info("generation succeeded", "content-type", img.ContentType, "bytes", len(img.Data))
	return &ImageResult{ImageURL: img.DataURI(), Prompt: prompt}, nil
}

func classify(err error) *GenerationError {
	var statusErr *image.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusServiceUnavailable:
			return newError(UpstreamLoading, statusErr.StatusCode, MsgModelLoading, err)
		case http.StatusUnauthorized:
			return newError(UpstreamUnauthorized, statusErr.StatusCode, MsgUnauthorized, err)
		case http.StatusTooManyRequests:
			return newError(UpstreamRateLimited, statusErr.StatusCode, MsgRateLimited, err)
		default:
			return newError(UpstreamError, statusErr.StatusCode, fmt.Sprintf("API Error: %s", statusErr.Body), err)
		}
	}

	var modelErr *image.ModelError
	if errors.As(err, &modelErr) {
		switch {
		case !modelErr.Parsed:
			return newError(UpstreamLoading, http.StatusServiceUnavailable, MsgModelUnavailable, err)
		case modelErr.Message == "":
			return newError(UpstreamLoading, http.StatusServiceUnavailable, MsgModelError, err)
		default:
			return newError(UpstreamLoading, http.StatusServiceUnavailable, modelErr.Message, err)
		}
	}

	return AsGenerationError(err)
}
