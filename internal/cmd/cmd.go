package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmorgan81/artistry/internal/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "artistry",
		Short: "Text-to-image generation gateway",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true

			debug, _ := strconv.ParseBool(os.Getenv("ARTISTRY_DEBUG"))
			logger := log.New(cmd.ErrOrStderr(), log.Level(debug))
			if err := godotenv.Load(); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					logger.Debug("no .env file found")
				} else {
					logger.Warn("failed to load .env file", "error", err)
				}
			}
			cmd.SetContext(log.NewContext(cmd.Context(), logger))
		},
	}

	rootCmd.AddCommand(newServeCmd(), newLambdaCmd(), newGenerateCmd())
	return rootCmd
}
