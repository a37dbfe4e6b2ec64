package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"solgraph/internal/builder"
	"solgraph/internal/codegen"
	"solgraph/internal/graph"
	"solgraph/internal/solc"
)

var (
	buildName     string
	buildOutput   string
	buildEmitOnly bool
)

var buildCmd = &cobra.Command{
	Use:   "build <graph.json>",
	Short: "Generate and compile Solidity source from a saved graph",
	Long: `Reads a serialized node graph, emits Solidity source for it and submits
the source to the configured compiler service. Diagnostics are printed to
stderr; the command exits non-zero when the compile reports errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildName, "name", "n", "MyContract", "Contract name")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write emitted source to a file instead of stdout")
	buildCmd.Flags().BoolVar(&buildEmitOnly, "emit-only", false, "Emit source without calling the compiler service")
}

func loadGraphFile(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph file: %w", err)
	}
	return &g, nil
}

func newCompiler() *solc.Client {
	timeout := time.Duration(viper.GetInt("compiler.timeout")) * time.Second
	return solc.NewClient(viper.GetString("compiler.url"), timeout)
}

func sessionOptions(name string) codegen.Options {
	return codegen.Options{
		ContractName:    name,
		SolidityVersion: viper.GetString("solidity_version"),
		License:         viper.GetString("license"),
		IncludeComments: viper.GetBool("include_comments"),
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := loadGraphFile(args[0])
	if err != nil {
		return err
	}

	session := builder.NewSession(newCompiler())
	session.Optimize = viper.GetBool("optimizer.enabled")
	session.OptimizerRuns = viper.GetInt("optimizer.runs")
	session.SetOptions(sessionOptions(buildName))
	session.UpdateGraph(g)

	if report := session.ValidateGraph(); !report.Valid {
		for _, e := range report.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
		}
	}

	var result *builder.GeneratedContract
	if buildEmitOnly {
		result = &builder.GeneratedContract{
			Name:       buildName,
			SourceCode: codegen.NewEmitter(g, session.Options()).Emit(),
		}
	} else {
		result = session.GenerateContract(cmd.Context())
	}

	if buildOutput != "" {
		if err := os.WriteFile(buildOutput, []byte(result.SourceCode), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", buildOutput)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), result.SourceCode)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("compilation finished with %d error(s)", len(result.Errors))
	}

	if !buildEmitOnly {
		fmt.Fprintf(cmd.ErrOrStderr(), "Compiled %s: %d ABI entries, %d bytes of bytecode\n",
			result.Name, len(result.ABI), len(result.Bytecode)/2)
	}
	return nil
}
