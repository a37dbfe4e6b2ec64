package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"solgraph/internal/graph"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the node kinds available on the builder canvas",
	Run: func(cmd *cobra.Command, args []string) {
		kinds := graph.KnownKinds()
		names := make([]string, 0, len(kinds))
		for _, k := range kinds {
			names = append(names, string(k))
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
