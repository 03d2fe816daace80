package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmorgan81/artistry/internal/log"
)

const DefaultModelURL = "https://api-inference.huggingface.co/models/black-forest-labs/FLUX.1-dev"

type HuggingFaceGenerator struct {
	Client *http.Client
	URL    string
}

func (g *HuggingFaceGenerator) Generate(ctx context.Context, token string, params Params) (*Image, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("huggingface").With("url", g.URL)
	log.Info("generating image via hugging face inference api", "prompt_length", len(params.Inputs))

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*, application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	class := Classify(resp.StatusCode, contentType)
	log.Info("received response", "status", resp.StatusCode, "content-type", contentType, "class", class.String())

	switch class {
	case FailureStatus:
		text, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read error body: %w", err)
		}
		log.Error("upstream returned failure status", "status", resp.StatusCode, "body", string(text))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(text)}

	case JSONPayload:
		text, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read json body: %w", err)
		}
		log.Error("upstream returned json instead of an image", "body", string(text))
		return nil, parseModelError(text)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image body exceeds %d bytes", MaxImageSize)
	}

	log.Info("received image", "bytes", len(data))
	return &Image{Data: data, ContentType: contentType}, nil
}

func parseModelError(body []byte) *ModelError {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &ModelError{}
	}

	// Falsy values carry no message.
	switch v := payload.Error.(type) {
	case nil:
		return &ModelError{Parsed: true}
	case bool:
		if !v {
			return &ModelError{Parsed: true}
		}
	case float64:
		if v == 0 {
			return &ModelError{Parsed: true}
		}
	case string:
		return &ModelError{Message: v, Parsed: true}
	}

	raw, _ := json.Marshal(payload.Error)
	return &ModelError{Message: string(raw), Parsed: true}
}
