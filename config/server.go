package config

import (
	"fmt"
	"net"
)

type ServerConfig struct {
	Listen string `yaml:"listen" json:"listen" default:"0.0.0.0:8080"`
}

func (cfg ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return fmt.Errorf("invalid listen address: '%s'", cfg.Listen)
	}
	return nil
}
