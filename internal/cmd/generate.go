package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dmorgan81/artistry/internal/gateway"
	"github.com/dmorgan81/artistry/internal/image"
	"github.com/dmorgan81/artistry/internal/inject"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var output string

	generateCmd := &cobra.Command{
		Use:   "generate PROMPT",
		Short: "Generate a single image and write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			injector := inject.Setup(ctx)
			defer func() { _ = injector.Shutdown() }()

			res, err := do.MustInvoke[*gateway.Gateway](injector).Generate(ctx, args[0])
			if err != nil {
				return err
			}

			img, err := image.ParseDataURI(res.ImageURL)
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("artwork-%d.%s", time.Now().Unix(), img.Extension())
			}
			if err := os.WriteFile(output, img.Data, 0o644); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	generateCmd.Flags().StringVarP(&output, "output", "o", "", "file to write the image to")
	return generateCmd
}
