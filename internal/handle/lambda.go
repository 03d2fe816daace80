package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmorgan81/artistry/internal/gateway"
	"github.com/dmorgan81/artistry/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// LambdaHandler serves the generate endpoint behind a Lambda Function URL.
type LambdaHandler struct {
	gateway *gateway.Gateway
	origins string
}

func NewLambdaHandler(i *do.Injector) (*LambdaHandler, error) {
	return &LambdaHandler{
		gateway: do.MustInvoke[*gateway.Gateway](i),
		origins: do.MustInvokeNamed[string](i, "origins"),
	}, nil
}

func (h *LambdaHandler) Handle(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	method := req.RequestContext.HTTP.Method
	logger := log.FromContextOrDiscard(ctx).With("request_id", req.RequestContext.RequestID)
	logger.Info("handling lambda invocation", "method", method, "path", req.RawPath)
	ctx = log.NewContext(ctx, logger)

	if method == http.MethodOptions {
		return h.respond(http.StatusOK, nil), nil
	}
	if method != http.MethodPost {
		return h.respond(http.StatusMethodNotAllowed, ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)}), nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.Error("failed to decode base64 body", "error", err)
			status, v := failure(err)
			return h.respond(status, v), nil
		}
		body = decoded
	}

	status, v := generate(ctx, h.gateway, body)
	logger.Info("generate request finished", "status", status)
	return h.respond(status, v), nil
}

func (h *LambdaHandler) respond(status int, v any) events.LambdaFunctionURLResponse {
	headers := lo.Assign(corsHeaders, map[string]string{
		"Access-Control-Allow-Origin": h.origins,
	})
	if v == nil {
		return events.LambdaFunctionURLResponse{StatusCode: status, Headers: headers}
	}

	body, err := json.Marshal(v)
	if err != nil {
		status, body = http.StatusInternalServerError, []byte(`{"error":"`+gateway.MsgUnexpected+`"}`)
	}
	headers["Content-Type"] = "application/json"
	return events.LambdaFunctionURLResponse{StatusCode: status, Headers: headers, Body: string(body)}
}
