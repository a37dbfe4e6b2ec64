package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"solgraph/internal/db"
	"solgraph/internal/metrics"
	"solgraph/internal/notify"
	"solgraph/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the builder API server",
	Long: `Starts the HTTP API the browser editor talks to: graph validation,
contract generation, and project storage. Prometheus metrics are exposed
on /metrics of the same listener.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := db.NewStore(db.StoreConfig{
		Type:             viper.GetString("store.type"),
		ConnectionString: viper.GetString("store.path"),
	})
	if err != nil {
		return fmt.Errorf("failed to open project store: %w", err)
	}
	defer store.Close()

	port := servePort
	if port == 0 {
		port = viper.GetInt("port")
	}

	server := web.NewServer(store, newCompiler(), metrics.New(), notify.NewSlackNotifier(), port)
	server.Optimize = viper.GetBool("optimizer.enabled")
	server.OptimizerRuns = viper.GetInt("optimizer.runs")

	return server.Start()
}
