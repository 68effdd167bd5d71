package config

import (
	"fmt"
	"slices"

	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	Level  string `yaml:"level" json:"level" default:"info"`
	Format string `yaml:"format" json:"format" default:"text"`
	File   string `yaml:"file" json:"file" default:""`
}

func (cfg LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level: '%s'", cfg.Level)
	}
	if !slices.Contains([]string{"text", "json"}, cfg.Format) {
		return fmt.Errorf("invalid log format: '%s'", cfg.Format)
	}
	return nil
}
