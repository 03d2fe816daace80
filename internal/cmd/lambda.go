package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmorgan81/artistry/internal/handle"
	"github.com/dmorgan81/artistry/internal/inject"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the generate endpoint as an AWS Lambda Function URL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			injector := inject.Setup(ctx)
			handler := do.MustInvoke[*handle.LambdaHandler](injector)
			lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
				_ = injector.Shutdown()
			}))
		},
	}
}
