// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default generation settings. Sampling values are policy, not contract.
const (
	DefaultEndpoint         = "https://api.openai.com/v1/chat/completions"
	DefaultModel            = "gpt-3.5-turbo"
	DefaultTemperature      = 0.9
	DefaultMaxTokens        = 200
	DefaultPresencePenalty  = 0.7
	DefaultFrequencyPenalty = 0.7
	DefaultRecencySize      = 50
	DefaultTimeout          = 30 * time.Second
	DefaultDataDir          = "data"
)

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with requests (e.g. "idea-swipe/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// AIConfig holds settings for calling the text-generation API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model" mapstructure:"model" validate:"required"`

	// APIKey is the bearer token. It is supplied by the secrets loader or the
	// environment and never written to config files.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// Endpoint is the chat completions URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`
}

// SamplingConfig holds the sampling parameters sent with every request.
type SamplingConfig struct {
	Temperature      float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens        int     `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens" validate:"gt=0"`
	PresencePenalty  float64 `json:"presence_penalty" yaml:"presence_penalty" mapstructure:"presence_penalty" validate:"gte=-2,lte=2"`
	FrequencyPenalty float64 `json:"frequency_penalty" yaml:"frequency_penalty" mapstructure:"frequency_penalty" validate:"gte=-2,lte=2"`
}

// GeneratorConfig holds settings for the idea generation client.
type GeneratorConfig struct {
	HTTPConfig     `yaml:",inline" mapstructure:",squash"`
	AIConfig       `yaml:",inline" mapstructure:",squash"`
	SamplingConfig `yaml:",inline" mapstructure:",squash"`

	// RecencySize bounds how many previous titles are sent as the
	// avoid-list (default 50).
	RecencySize int `json:"recency_size" yaml:"recency_size" mapstructure:"recency_size" validate:"gt=0"`
}

// StoreConfig holds settings for the saved-idea store.
type StoreConfig struct {
	// DataDir is the directory holding ideas.db.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir" validate:"required"`
}

// AppConfig groups all configuration for the CLI.
type AppConfig struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator" mapstructure:"generator"`
	Store     StoreConfig     `json:"store" yaml:"store" mapstructure:"store"`
}

// DefaultGeneratorConfig returns the generator settings used when nothing is configured.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		HTTPConfig: HTTPConfig{Timeout: DefaultTimeout},
		AIConfig: AIConfig{
			Model:    DefaultModel,
			Endpoint: DefaultEndpoint,
		},
		SamplingConfig: SamplingConfig{
			Temperature:      DefaultTemperature,
			MaxTokens:        DefaultMaxTokens,
			PresencePenalty:  DefaultPresencePenalty,
			FrequencyPenalty: DefaultFrequencyPenalty,
		},
		RecencySize: DefaultRecencySize,
	}
}

// DefaultAppConfig returns the full default configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Generator: DefaultGeneratorConfig(),
		Store:     StoreConfig{DataDir: DefaultDataDir},
	}
}

var validate = validator.New()

// Validate checks the configuration against its struct tags and returns
// one error listing every failing field.
func (c AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", field, e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
