package param

import (
	"context"
	"errors"
	"os"
)

var ErrNotFound = errors.New("parameter not found")

type Fetcher interface {
	Fetch(context.Context, string) (string, error)
}

// EnvFetcher reads parameters from the process environment.
type EnvFetcher struct{}

func (EnvFetcher) Fetch(_ context.Context, name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}
