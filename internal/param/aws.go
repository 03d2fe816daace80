package param

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/dmorgan81/artistry/internal/log"
)

// ParameterStoreAPI is the subset of the SSM client used here.
type ParameterStoreAPI interface {
	GetParameter(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type ParameterStoreFetcher struct {
	Client ParameterStoreAPI
}

func (f *ParameterStoreFetcher) Fetch(ctx context.Context, path string) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("parameter store").With("path", path)
	log.Info("fetching single parameter")

	if path == "" {
		return "", ErrNotFound
	}

	out, err := f.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get parameter: %w", err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", ErrNotFound
	}
	return aws.ToString(out.Parameter.Value), nil
}
