package config

import (
	"os"
	"sync"
)

type GigaChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	gigaChatConfig *GigaChatConfig
	gigaChatOnce   sync.Once
)

func LoadGigaChatConfig() *GigaChatConfig {
	gigaChatOnce.Do(func() {
		baseURL := os.Getenv("GIGACHAT_BASE_URL")
		if baseURL == "" {
			baseURL = "https://gigachat.devices.sberbank.ru/api/v1"
		}
		model := os.Getenv("GIGACHAT_MODEL")
		if model == "" {
			model = "GigaChat"
		}
		gigaChatConfig = &GigaChatConfig{
			APIKey:  os.Getenv("GIGACHAT_API_KEY"),
			BaseURL: baseURL,
			Model:   model,
		}
	})
	return gigaChatConfig
}
