package config

import (
	"errors"
	"net/url"
)

// PegaConfig configures the outbound Pega REST client. The client is only
// constructed when BaseURL is set; API key authentication takes precedence
// over basic auth when both are supplied.
type PegaConfig struct {
	BaseURL  string `yaml:"base_url" json:"base_url" envconfig:"BASE_URL"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
	APIKey   string `yaml:"api_key" json:"-" envconfig:"API_KEY"`
	// Timeout is the request timeout in milliseconds.
	Timeout uint32 `yaml:"timeout" json:"timeout" default:"10000"`
}

func (cfg PegaConfig) Enabled() bool {
	return cfg.BaseURL != ""
}

func (cfg PegaConfig) Validate() error {
	if cfg.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("invalid pega base_url: '" + cfg.BaseURL + "'")
	}
	if cfg.Username != "" && cfg.Password == "" {
		return errors.New("pega password is required when username is set")
	}
	return nil
}
