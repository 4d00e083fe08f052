package config

import (
	"os"
	"sync"
)

// GeminiConfig holds the API key for gemini-provider connectors. The key is
// read once; GOOGLE_API_KEY is accepted as a fallback name.
type GeminiConfig struct {
	APIKey string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		geminiConfig = &GeminiConfig{
			APIKey: apiKey,
		}
	})
	return geminiConfig
}
