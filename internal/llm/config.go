// Package llm wraps the generative model used to parse resumes.
package llm

import "os"

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite is for cheap classification and extraction.
	TierLite ModelTier = "lite"
	// TierStandard is the default for structured output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for full resume section parsing.
	TierAdvanced ModelTier = "advanced"
)

// ParseTier is the tier used for resume parsing.
const ParseTier = TierAdvanced

// Provider names the model vendor.
type Provider string

// ProviderGemini is Google Gemini, the only supported provider.
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps parses reproducible.
const DefaultTemperature float32 = 0.1

// Config maps tiers to model names.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-3-pro-preview",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFromEnv applies GEMINI_PARSE_MODEL to the parse tier.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv("GEMINI_PARSE_MODEL"); model != "" {
		cfg = cfg.WithModel(ParseTier, model)
	}
	return cfg
}

// GetModel returns the model for tier, falling back to standard and then
// lite. It returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models, Temperature: c.Temperature}
}
