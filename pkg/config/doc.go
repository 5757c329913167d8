// Package config loads typed configuration from environment variables.
//
// Struct fields are bound with github.com/caarlos0/env tags (`env`,
// `envDefault`, `required`); dotenv files are read with github.com/joho/godotenv
// before parsing. Errors wrap ErrParsingConfig, ErrLoadingEnvFile or
// ErrNilPointer and can be checked with errors.Is.
package config
