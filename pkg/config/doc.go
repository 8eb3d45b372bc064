// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv for reading .env files and
// github.com/caarlos0/env/v11 for parsing the environment into tagged structs:
//
//	type Config struct {
//	    URI        string `env:"MONGODB_URL,required"`
//	    Database   string `env:"MONGODB_DATABASE" envDefault:"vanity"`
//	    Collection string `env:"MONGODB_COLLECTION" envDefault:"addresses"`
//	}
//
//	if err := config.LoadEnv("deploy/.env"); err != nil {
//	    return err
//	}
//	var cfg Config
//	if err := config.Parse(&cfg, nil); err != nil {
//	    return err
//	}
//
// LoadDefaultEnv reads ./.env when present and is a no-op otherwise.
// Variables already set in the process environment always take precedence
// over values read from files, and Parse overrides take precedence over both.
//
// Errors are package sentinels (ErrParsingConfig, ErrLoadingEnvFile,
// ErrNilPointer) joined with the underlying cause; compare with errors.Is.
package config
