// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the idea-swipe CLI.
// It wires configuration, secrets, the idea generator, and the saved-idea
// store behind cobra subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-swipe/internal/ideagen"
	"github.com/pdiddy/idea-swipe/internal/secrets"
	"github.com/pdiddy/idea-swipe/internal/store"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds the openai-api-key file. Tests point it at a temp dir.
var secretsDir = ".secrets"

// logger is replaced in PersistentPreRunE once --verbose is known.
var logger = zap.NewNop()

// rootCmd is the base command for the idea-swipe CLI.
var rootCmd = &cobra.Command{
	Use:   "idea-swipe",
	Short: "Swipe through AI-generated date ideas and keep the ones you like",
	Long: `idea-swipe asks a text-generation API for short, cheap, do-it-now date
ideas, one card at a time. Like a card to save it locally; dismiss it to
get another. Recently shown titles are sent back to the model so it avoids
repeating itself.

The API key is read from .secrets/openai-api-key, the IDEA_SWIPE_API_KEY
environment variable, or --api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			logger = l
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./idea-swipe.yaml or ~/.config/idea-swipe/idea-swipe.yaml)")
	pf.String("api-key", "", "API bearer token (overrides .secrets/openai-api-key)")
	pf.String("data-dir", types.DefaultDataDir, "directory holding the saved-idea database")
	pf.String("model", types.DefaultModel, "chat model identifier")
	pf.BoolP("verbose", "v", false, "log progress and failures to stderr")

	_ = viper.BindPFlag("api_key", pf.Lookup("api-key"))
	_ = viper.BindPFlag("store.data_dir", pf.Lookup("data-dir"))
	_ = viper.BindPFlag("generator.model", pf.Lookup("model"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("idea-swipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "idea-swipe"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("IDEA_SWIPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env overrides apply even when
// no config file exists.
func setDefaults(v *viper.Viper) {
	d := types.DefaultAppConfig()
	v.SetDefault("api_key", "")
	v.SetDefault("generator.timeout", d.Generator.Timeout)
	v.SetDefault("generator.user_agent", "idea-swipe/"+version)
	v.SetDefault("generator.model", d.Generator.Model)
	v.SetDefault("generator.endpoint", d.Generator.Endpoint)
	v.SetDefault("generator.temperature", d.Generator.Temperature)
	v.SetDefault("generator.max_tokens", d.Generator.MaxTokens)
	v.SetDefault("generator.presence_penalty", d.Generator.PresencePenalty)
	v.SetDefault("generator.frequency_penalty", d.Generator.FrequencyPenalty)
	v.SetDefault("generator.recency_size", d.Generator.RecencySize)
	v.SetDefault("store.data_dir", d.Store.DataDir)
}

// loadConfig decodes and validates the configuration held by v.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	cfg := types.DefaultAppConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.AppConfig{}, err
	}
	return cfg, nil
}

// newGenerator builds the idea client, resolving the API key from flags,
// environment, or the secrets directory.
func newGenerator(v *viper.Viper) (*ideagen.Client, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	key, err := secrets.ResolveAPIKey(v.GetString("api_key"), secretsDir)
	if err != nil {
		return nil, err
	}
	cfg.Generator.APIKey = key
	return ideagen.New(cfg.Generator)
}

// openStore opens the saved-idea store named by the configuration.
func openStore(v *viper.Viper) (*store.Store, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
