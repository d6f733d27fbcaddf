package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printcon-atlas/atlas-backend/internal/assistant/parser"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <message>",
		Short: "Show the filter intent a chat message carries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parser.Parse(strings.Join(args, " ")))
		},
	}
}
