package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CASEBRIDGE"

// Load populates cfg from an optional YAML file and CASEBRIDGE_* environment
// variables, the environment taking precedence over the file.
func Load(filename string, cfg *Config) error {
	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return err
		}
	}

	return envconfig.Process(envPrefix, cfg)
}
