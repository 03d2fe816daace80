package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/dmorgan81/artistry/internal/gateway"
	"github.com/dmorgan81/artistry/internal/log"
	"github.com/dmorgan81/artistry/internal/page"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/samber/do"
)

const (
	GeneratePath = "/api/generate-image"
	HealthPath   = "/health"
	ServiceName  = "artistry"
)

type HTTPHandler struct {
	gateway   *gateway.Gateway
	templator *page.Templator
	origins   string
}

func NewHTTPHandler(i *do.Injector) (*HTTPHandler, error) {
	return &HTTPHandler{
		gateway:   do.MustInvoke[*gateway.Gateway](i),
		templator: do.MustInvoke[*page.Templator](i),
		origins:   do.MustInvokeNamed[string](i, "origins"),
	}, nil
}

func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.cors)

	r.HandleFunc(GeneratePath, h.handleGenerate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(HealthPath, h.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	return r
}

func (h *HTTPHandler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		logger := log.FromContextOrDiscard(r.Context()).With("request_id", id)
		logger.Info("handling http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(log.NewContext(r.Context(), logger)))
	})
}

// MaxRequestIDLength bounds client supplied request ids.
const MaxRequestIDLength = 64

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func validRequestID(id string) bool {
	return len(id) <= MaxRequestIDLength && requestIDPattern.MatchString(id)
}

func (h *HTTPHandler) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.origins)
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HTTPHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	log := log.FromContextOrDiscard(r.Context()).WithGroup("HTTPHandler")

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestSize+1))
	if err != nil {
		log.Error("failed to read request body", "error", err)
		status, v := failure(err)
		writeJSON(w, status, v)
		return
	}

	status, v := generate(r.Context(), h.gateway, body)
	log.Info("generate request finished", "status", status)
	writeJSON(w, status, v)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

func (h *HTTPHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := h.templator.Template(r.Context(), page.Params{
		Title:    "Artistry",
		Endpoint: GeneratePath,
	})
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
