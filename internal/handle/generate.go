package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmorgan81/artistry/internal/gateway"
)

// MaxRequestSize bounds the JSON request body accepted by both transports.
const MaxRequestSize = 1 << 20

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// generate decodes a request body and runs it through the gateway, returning
// the status and JSON value to answer with.
func generate(ctx context.Context, gw *gateway.Gateway, body []byte) (int, any) {
	if len(body) > MaxRequestSize {
		return failure(fmt.Errorf("request body exceeds %d bytes", MaxRequestSize))
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failure(fmt.Errorf("failed to decode request: %w", err))
	}

	res, err := gw.Generate(ctx, req.Prompt)
	if err != nil {
		return failure(err)
	}
	return http.StatusOK, res
}

func failure(err error) (int, any) {
	genErr := gateway.AsGenerationError(err)
	return genErr.Status, ErrorResponse{Error: genErr.Message}
}
