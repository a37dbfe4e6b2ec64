package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solgraph/internal/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph.json>",
	Short: "Run structural validation over a saved graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, err := loadGraphFile(args[0])
	if err != nil {
		return err
	}

	report := graph.Validate(g)
	if report.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "Graph is valid: %d nodes, %d connections\n",
			len(g.Nodes()), len(g.Connections()))
		return nil
	}

	for _, e := range report.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", e)
	}
	return fmt.Errorf("graph has %d validation error(s)", len(report.Errors))
}
