// Package config loads configuration from file, environment and .env.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("solgraph")
	}

	viper.SetEnvPrefix("SOLGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("compiler.url", "http://localhost:8545/compile")
	viper.SetDefault("compiler.timeout", 60)
	viper.SetDefault("solidity_version", "0.8.19")
	viper.SetDefault("license", "MIT")
	viper.SetDefault("include_comments", false)
	viper.SetDefault("optimizer.enabled", false)
	viper.SetDefault("optimizer.runs", 200)
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.path", ".solgraph.db")
	viper.SetDefault("port", 8080)
	viper.SetDefault("verbose", false)

	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#contracts")
	viper.SetDefault("notifications.slack.events.on_success", true)
	viper.SetDefault("notifications.slack.events.on_failure", true)
}
