package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"materia/internal/query"
	"materia/internal/service"
	"materia/internal/similarity"
)

func newMatchCmd(a *app) *cobra.Command {
	var (
		topK    int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "match <properties>",
		Short: "Print the closest materials once and exit",
		Long: `Rank the dataset against the given properties and print the result.

Examples:
  # Top 3 matches
  materia match "tipo=2, peso=5"

  # Top 5 matches with raw distances
  materia match --top 5 --verbose "tipo=2, peso=5"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if topK <= 0 {
				topK = a.cfg.Matching.TopK
			}
			text := strings.Join(args, " ")
			svc := service.NewMatchService(a.dataset, topK, a.logger)
			matches, err := svc.Match(text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, service.FormatMatches(matches))
			if !verbose {
				return nil
			}
			q, _ := query.Parse(text)
			if unknown := query.Unknown(q, a.dataset.Schema); len(unknown) > 0 {
				fmt.Fprintf(out, "\nIgnored properties: %s\n", strings.Join(unknown, ", "))
			}
			fmt.Fprintln(out, "\nDistances:")
			for i, d := range similarity.Distances(q, a.dataset) {
				fmt.Fprintf(out, "  %s\t%.4f\n", a.dataset.Materials[i].Name, d)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "top", 0, "Number of matches to print (defaults to matching.top_k)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print ignored properties and raw distances")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the properties recognized by the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dataset: %s (%d materials)\n", a.cfg.Dataset.Path, a.dataset.Len())
			fmt.Fprintf(out, "Available properties: %s\n", strings.Join(a.dataset.Schema, ", "))
			return nil
		},
	}
}
