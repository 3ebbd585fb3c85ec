package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name          string
	Env           string
	Port          string
	RecordingsDir string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		recordingsDir := os.Getenv("RECORDINGS_DIR")
		if recordingsDir == "" {
			recordingsDir = "./recordings"
		}
		appConfig = &AppConfig{
			Name:          os.Getenv("APP_NAME"),
			Env:           env,
			Port:          os.Getenv("APP_PORT"),
			RecordingsDir: recordingsDir,
		}
	})
	return appConfig
}
