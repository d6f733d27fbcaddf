package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "worker",
		Short:         "Offline jobs for the atlas catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newImportCommand())
	root.AddCommand(newStatsCommand())
	root.AddCommand(newParseCommand())
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
