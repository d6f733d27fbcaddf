package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printcon-atlas/atlas-backend/internal/assistant/summary"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/loader"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
)

func newStatsCommand() *cobra.Command {
	var csvPath string
	var showContext bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the assistant summary for the whole catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loader.LoadFile(csvPath)
			if err != nil {
				return err
			}

			state := filter.Default(cat)
			s := summary.Build(filter.Apply(cat, state), state)

			w := cmd.OutOrStdout()
			if showContext {
				fmt.Fprintln(w, s.Context())
				return nil
			}

			fmt.Fprintf(w, "Projects: %d (%d-%d)\n", s.Total, s.YearRange.Min(), s.YearRange.Max())
			fmt.Fprintln(w, "Materials:")
			for _, m := range s.Materials {
				fmt.Fprintf(w, "  %s\n", m)
			}
			fmt.Fprintln(w, "Countries:")
			for _, c := range s.Countries {
				fmt.Fprintf(w, "  %s\n", c)
			}
			fmt.Fprintf(w, "Trend: %s\n", s.Trend.Label())
			fmt.Fprintf(w, "Leading organization: %s (%d projects)\n", s.LeadingOrg, s.LeadingOrgCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "projects.csv", "catalog CSV file")
	cmd.Flags().BoolVar(&showContext, "context", false, "print the assistant system prompt instead")
	return cmd
}
