package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadEnv reads one or more .env files into the process environment.
// With no arguments it reads ".env" from the working directory.
//
// Precedence: variables already present in the process environment win, then
// later files win over earlier ones. A missing file is an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	merged := make(map[string]string)
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
		for k, v := range vals {
			merged[k] = v
		}
	}

	for k, v := range merged {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// LoadDefaultEnv reads ".env" from the working directory when it exists. A
// missing file is not an error.
func LoadDefaultEnv() error {
	if err := LoadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Parse fills v from the environment using `env` struct tags. Entries in
// overrides take precedence over process variables with the same name, so
// command-line flags can feed the same tags as the environment.
//
// Example:
//
//	var cfg mongo.Config
//	if err := config.Parse(&cfg, map[string]string{"MONGODB_URL": flagURI}); err != nil {
//		return err
//	}
func Parse[T any](v *T, overrides map[string]string) error {
	if v == nil {
		return ErrNilPointer
	}
	environ := make(map[string]string, len(overrides))
	for _, kv := range os.Environ() {
		if k, val, ok := strings.Cut(kv, "="); ok {
			environ[k] = val
		}
	}
	for k, val := range overrides {
		environ[k] = val
	}
	if err := env.ParseWithOptions(v, env.Options{Environment: environ}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
