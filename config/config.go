package config

import (
	"encoding/json"

	"github.com/creasty/defaults"
)

var (
	VERSION = "dev"
	COMMIT  = "unknown"
)

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" json:"log" envconfig:"LOG"`
	Database DatabaseConfig `yaml:"database" json:"database" envconfig:"DATABASE"`
	Server   ServerConfig   `yaml:"server" json:"server" envconfig:"SERVER"`
	Worker   WorkerConfig   `yaml:"worker" json:"worker" envconfig:"WORKER"`
	Pega     PegaConfig     `yaml:"pega" json:"pega" envconfig:"PEGA"`
}

func (cfg Config) String() string {
	bytes, err := json.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (cfg Config) Validate() error {
	if err := cfg.Log.Validate(); err != nil {
		return err
	}
	if err := cfg.Database.Validate(); err != nil {
		return err
	}
	if err := cfg.Server.Validate(); err != nil {
		return err
	}
	if err := cfg.Worker.Validate(); err != nil {
		return err
	}
	if err := cfg.Pega.Validate(); err != nil {
		return err
	}
	return nil
}

func New() *Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}
