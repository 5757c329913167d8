package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads dotenv files into the process environment and parses environment
// variables into v according to its `env` struct tags.
//
// With no files given, ".env" in the working directory is tried. Missing files
// are skipped; variables already present in the environment win over dotenv
// values.
//
// Example:
//
//	type Config struct {
//		LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
//		Continuous bool   `env:"VALIDATOR_CONTINUOUS" envDefault:"false"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", f, err))
		}
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
