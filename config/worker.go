package config

import "errors"

type WorkerConfig struct {
	// Workers is the number of concurrent processing goroutines.
	Workers uint32 `yaml:"workers" json:"workers" default:"16"`
	// Backlog is the size of the scheduling queue. A full backlog makes
	// Schedule fail loudly instead of queueing without bound.
	Backlog uint32 `yaml:"backlog" json:"backlog" default:"1024"`
}

func (cfg WorkerConfig) Validate() error {
	if cfg.Workers == 0 {
		return errors.New("worker.workers must be > 0")
	}
	if cfg.Backlog == 0 {
		return errors.New("worker.backlog must be > 0")
	}
	return nil
}
