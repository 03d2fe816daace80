package image

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) (*HuggingFaceGenerator, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return &HuggingFaceGenerator{Client: srv.Client(), URL: srv.URL}, &calls
}

func TestHuggingFaceGeneratorRequest(t *testing.T) {
	gen, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a kitten in space", body["inputs"])
		assert.Equal(t, map[string]any{
			"height":              float64(512),
			"width":               float64(512),
			"guidance_scale":      3.5,
			"num_inference_steps": float64(28),
		}, body["parameters"])

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
	})

	img, err := gen.Generate(context.Background(), "hf_secret", Params{Inputs: "a kitten in space", Parameters: DefaultParameters()})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.True(t, strings.HasPrefix(img.DataURI(), "data:image/jpeg;base64,"))
}

func TestHuggingFaceGeneratorBinaryWithoutContentType(t *testing.T) {
	gen, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte{0x01, 0x02, 0x03})
	})

	img, err := gen.Generate(context.Background(), "token", Params{Inputs: "x"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, img.Data)
	assert.True(t, strings.HasPrefix(img.DataURI(), "data:image/png;base64,"))
}

func TestHuggingFaceGeneratorFailureStatus(t *testing.T) {
	gen, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"loading"}`)
	})

	_, err := gen.Generate(context.Background(), "token", Params{Inputs: "x"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, `{"error":"loading"}`, statusErr.Body)
}

func TestHuggingFaceGeneratorBoundsErrorBodies(t *testing.T) {
	gen, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, strings.Repeat("x", MaxErrorSize*2))
	})

	_, err := gen.Generate(context.Background(), "token", Params{Inputs: "x"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, MaxErrorSize)
}

func TestHuggingFaceGeneratorJSONPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ModelError
	}{
		{"error string", `{"error":"busy"}`, ModelError{Message: "busy", Parsed: true}},
		{"error list", `{"error":["a","b"]}`, ModelError{Message: `["a","b"]`, Parsed: true}},
		{"no error field", `{"estimated_time":12.5}`, ModelError{Parsed: true}},
		{"error null", `{"error":null}`, ModelError{Parsed: true}},
		{"error false", `{"error":false}`, ModelError{Parsed: true}},
		{"error zero", `{"error":0}`, ModelError{Parsed: true}},
		{"error empty string", `{"error":""}`, ModelError{Parsed: true}},
		{"error true", `{"error":true}`, ModelError{Message: "true", Parsed: true}},
		{"error number", `{"error":42}`, ModelError{Message: "42", Parsed: true}},
		{"not json", `<html>`, ModelError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := gen.Generate(context.Background(), "token", Params{Inputs: "x"})
			var modelErr *ModelError
			require.True(t, errors.As(err, &modelErr))
			assert.Equal(t, tt.want, *modelErr)
		})
	}
}

func TestHuggingFaceGeneratorTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	gen := &HuggingFaceGenerator{Client: http.DefaultClient, URL: srv.URL}
	_, err := gen.Generate(context.Background(), "token", Params{Inputs: "x"})
	require.Error(t, err)

	var statusErr *StatusError
	var modelErr *ModelError
	assert.False(t, errors.As(err, &statusErr))
	assert.False(t, errors.As(err, &modelErr))
}
