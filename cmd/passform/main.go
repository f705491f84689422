package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/passform/passform-go/internal/passgen"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passform",
		Short:         "Password form service and generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Debug("no .env file found, using environment variables")
			}
		},
	}

	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		msg := err.Error()
		if passgen.IsUserError(err) {
			msg = passgen.Message(err)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		os.Exit(1)
	}
}
