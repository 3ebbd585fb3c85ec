package config

import (
	"os"
	"sync"
)

// GeminiConfig covers the embedding provider. Chat generation goes through
// GigaChat; Gemini is embeddings only.
type GeminiConfig struct {
	APIKey         string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		embeddingModel := os.Getenv("GEMINI_EMBEDDING_MODEL")
		if embeddingModel == "" {
			embeddingModel = "gemini-embedding-001"
		}
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			EmbeddingModel: embeddingModel,
		}
	})
	return geminiConfig
}
