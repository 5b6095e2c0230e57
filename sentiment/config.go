package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigFile = "config.json"

// Config aggregates the runtime settings persisted to config.json.
type Config struct {
	Encoder          EncoderConfig `json:"encoder"`
	LinearModelPath  string        `json:"linearModelPath"`
	NeuralModelPath  string        `json:"neuralModelPath"`
	AbbreviationFile string        `json:"abbreviationFile"`
	BatchSize        int           `json:"batchSize"`
	Workers          int           `json:"workers"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Encoder.MaxSeqLen == 0 {
		c.Encoder.MaxSeqLen = 256
	}
	if c.Encoder.ModelPath == "" {
		c.Encoder.ModelPath = "./models/phobert/model.onnx"
	}
	if c.Encoder.TokenizerPath == "" {
		c.Encoder.TokenizerPath = "./models/phobert/tokenizer.json"
	}
	if c.Encoder.CacheDir == "" {
		c.Encoder.CacheDir = "./cache"
	}
	if c.LinearModelPath == "" {
		c.LinearModelPath = "./models/logreg.json"
	}
	if c.NeuralModelPath == "" {
		c.NeuralModelPath = "./models/dense_head.json"
	}
	if c.AbbreviationFile == "" {
		c.AbbreviationFile = "./data/abbreviations.tsv"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 32
	}
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk atomically.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
