package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dmorgan81/artistry/internal/gateway"
	"github.com/dmorgan81/artistry/internal/image"
	"github.com/dmorgan81/artistry/internal/page"
	"github.com/samber/do"
)

type upstream struct {
	calls  atomic.Int32
	status int
	ctype  string
	body   string
}

// newInjector wires the handlers against a fake inference server.
func newInjector(t *testing.T, token string, up *upstream) *do.Injector {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.calls.Add(1)
		w.Header().Set("Content-Type", up.ctype)
		w.WriteHeader(up.status)
		_, _ = io.WriteString(w, up.body)
	}))
	t.Cleanup(srv.Close)

	i := do.New()
	do.ProvideValue(i, gateway.New(token, &image.HuggingFaceGenerator{Client: srv.Client(), URL: srv.URL}))
	do.ProvideValue(i, &page.Templator{})
	do.ProvideNamedValue(i, "origins", "https://example.com")
	do.Provide(i, NewHTTPHandler)
	do.Provide(i, NewLambdaHandler)
	t.Cleanup(func() { _ = i.Shutdown() })
	return i
}

func imageUpstream() *upstream {
	return &upstream{status: http.StatusOK, ctype: "image/jpeg", body: "jpeg"}
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", body, err)
	}
	return v
}
