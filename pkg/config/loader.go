// Package config fills tagged structs from the process environment.
//
// Variables are read with github.com/caarlos0/env/v11; a .env file in the
// working directory is loaded once through github.com/joho/godotenv before
// the first parse. Variables that are already set win over .env entries.
//
//	var cfg response.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option adjusts a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix   string
	files    []string
	environ  map[string]string
	required bool
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles loads the named files instead of the default .env. Missing
// files are an error.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from vars instead of the process environment.
// No .env file is read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) { o.environ = vars }
}

// WithRequiredIfNoDefault treats every field without envDefault as required.
func WithRequiredIfNoDefault() Option {
	return func(o *loadOptions) { o.required = true }
}

// Load parses the environment into v.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.environ != nil:
	case len(o.files) > 0:
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	default:
		dotenvOnce.Do(func() {
			if _, err := os.Stat(".env"); err == nil {
				_ = godotenv.Load()
			}
		})
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:                o.prefix,
		Environment:           o.environ,
		RequiredIfNoDef:       o.required,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure, for configuration a process
// cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
