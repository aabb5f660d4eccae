package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/skycast/pkg/log"
)

// OpenAIConfig configures the chat model. The API key is optional: with
// no key the chatbot runs entirely on the rule-based fallback path.
type OpenAIConfig struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model       string  `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS" envDefault:"150"`
	Temperature float64 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}

func (c OpenAIConfig) HasKey() bool {
	return c.APIKey != ""
}
