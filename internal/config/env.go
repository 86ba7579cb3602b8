package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// CLIEnv holds process-level defaults for the command line, read from the environment
type CLIEnv struct {
	Format    string `env:"SAVINGS_FORMAT"     envDefault:"console"`
	OutputDir string `env:"SAVINGS_OUTPUT_DIR" envDefault:"."`
	LogLevel  string `env:"SAVINGS_LOG_LEVEL"  envDefault:"info"`
	Workers   int    `env:"SAVINGS_MC_WORKERS" envDefault:"10"`
}

// LoadEnv parses CLIEnv from the environment
func LoadEnv() (CLIEnv, error) {
	var cfg CLIEnv
	if err := env.Parse(&cfg); err != nil {
		return CLIEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
