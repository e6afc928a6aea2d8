// Package config loads ambient settings from the environment and keeps
// the single-record last-model store on disk.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultModel is used when no model has ever been persisted.
	DefaultModel = "qwen3-vl:8b"

	// DefaultOllamaURL is the standard local Ollama endpoint.
	DefaultOllamaURL = "http://localhost:11434"

	configDirName  = "neocr"
	configFileName = "config.json"
)

type Config struct {
	OllamaURL         string
	Language          string
	EnableFileLogging bool
	NotifyEnabled     bool
	OCRDeadlineSec    int
}

// Load reads settings from a .env file next to the executable (or the
// NEOCR_ENV path) and the process environment. Every setting has a
// working default; Load never fails on a missing file.
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	ocrDeadlineSec := 120
	if v := os.Getenv("OCR_DEADLINE_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ocrDeadlineSec = n
		}
	}

	cfg := &Config{
		OllamaURL:         getEnvWithDefault("OLLAMA_URL", DefaultOllamaURL),
		Language:          getEnvWithDefault("OCR_LANGUAGE", "English"),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		NotifyEnabled:     strings.ToLower(getEnvWithDefault("NOTIFY_ENABLED", "true")) == "true",
		OCRDeadlineSec:    ocrDeadlineSec,
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv("NEOCR_ENV"); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// record is the on-disk shape of the last-model store: one key,
// overwritten on every successful run.
type record struct {
	LastModel string `json:"last_model"`
}

func configFilePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// LastModel returns the persisted model name, or DefaultModel when the
// record is missing or unreadable. The read is deliberately permissive:
// a corrupt file must never block startup.
func LastModel() string {
	path, err := configFilePath()
	if err != nil {
		return DefaultModel
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultModel
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.LastModel == "" {
		return DefaultModel
	}
	return rec.LastModel
}

// SaveLastModel persists the model name for the next launch. The write
// is best-effort; failures are ignored so a read-only home directory
// cannot break a run.
func SaveLastModel(name string) {
	if name == "" {
		return
	}
	path, err := configFilePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	data, err := json.Marshal(record{LastModel: name})
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}
