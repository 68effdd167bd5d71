package config

import (
	"errors"
	"fmt"
)

type DatabaseConfig struct {
	// Path is the sqlite database file. ":memory:" is rejected because the
	// service opens multiple connections.
	Path        string `yaml:"path" json:"path" default:"casebridge.db"`
	BusyTimeout uint32 `yaml:"busy_timeout" json:"busy_timeout" default:"10000" envconfig:"BUSY_TIMEOUT"`
	MaxPoolSize uint32 `yaml:"max_pool_size" json:"max_pool_size" default:"10" envconfig:"MAX_POOL_SIZE"`
}

func (cfg DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on", cfg.Path, cfg.BusyTimeout)
}

func (cfg DatabaseConfig) Validate() error {
	if cfg.Path == "" {
		return errors.New("database path is required")
	}
	if cfg.Path == ":memory:" {
		return errors.New("in-memory database is not supported")
	}
	return nil
}
