package inject

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/artistry/internal/gateway"
	"github.com/dmorgan81/artistry/internal/handle"
	"github.com/dmorgan81/artistry/internal/image"
	"github.com/dmorgan81/artistry/internal/log"
	"github.com/dmorgan81/artistry/internal/page"
	"github.com/dmorgan81/artistry/internal/param"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const (
	DefaultTimeout = 60 * time.Second
	DefaultPort    = "8080"
	DefaultOrigins = "*"
)

func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*http.Client](injector, func(i *do.Injector) (*http.Client, error) {
		return &http.Client{Timeout: timeout(ctx)}, nil
	})

	do.Provide[param.Fetcher](injector, func(i *do.Injector) (param.Fetcher, error) {
		return &param.ParameterStoreFetcher{Client: do.MustInvoke[*ssm.Client](i)}, nil
	})
	do.Provide[image.Generator](injector, func(i *do.Injector) (image.Generator, error) {
		return &image.HuggingFaceGenerator{
			Client: do.MustInvoke[*http.Client](i),
			URL:    do.MustInvokeNamed[string](i, "model_url"),
		}, nil
	})
	do.Provide[*gateway.Gateway](injector, func(i *do.Injector) (*gateway.Gateway, error) {
		return gateway.New(do.MustInvokeNamed[string](i, "hf_token"), do.MustInvoke[image.Generator](i)), nil
	})
	do.ProvideValue[*page.Templator](injector, &page.Templator{})

	do.ProvideNamed[string](injector, "hf_token", func(i *do.Injector) (string, error) {
		return token(ctx, i), nil
	})
	do.ProvideNamedValue[string](injector, "model_url", getenv("HF_MODEL_URL", image.DefaultModelURL))
	do.ProvideNamedValue[string](injector, "origins", getenv("ARTISTRY_ORIGINS", DefaultOrigins))
	do.ProvideNamedValue[string](injector, "port", getenv("PORT", DefaultPort))

	do.Provide[*handle.HTTPHandler](injector, handle.NewHTTPHandler)
	do.Provide[*handle.LambdaHandler](injector, handle.NewLambdaHandler)

	return injector
}

// token resolves the upstream credential from HF_API_TOKEN, falling back to the
// parameter store path in HF_API_TOKEN_PARAM. A missing credential is not fatal;
// the gateway rejects requests until one is configured.
func token(ctx context.Context, i *do.Injector) string {
	log := log.FromContextOrDiscard(ctx)

	v, err := param.EnvFetcher{}.Fetch(ctx, "HF_API_TOKEN")
	if err == nil {
		return v
	}

	path := os.Getenv("HF_API_TOKEN_PARAM")
	if path == "" {
		log.Warn("no hugging face token configured")
		return ""
	}

	fetcher, err := do.Invoke[param.Fetcher](i)
	if err == nil {
		v, err = fetcher.Fetch(ctx, path)
	}
	if err != nil {
		log.Error("failed to fetch hugging face token", "path", path, "error", err, "not_found", errors.Is(err, param.ErrNotFound))
		return ""
	}
	return v
}

func timeout(ctx context.Context) time.Duration {
	raw := os.Getenv("HF_TIMEOUT")
	if raw == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.FromContextOrDiscard(ctx).Warn("ignoring invalid HF_TIMEOUT", "value", raw, "error", err)
		return DefaultTimeout
	}
	return d
}

func getenv(key, fallback string) string {
	return lo.Ternary(os.Getenv(key) != "", os.Getenv(key), fallback)
}
