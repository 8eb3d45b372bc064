package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
	"github.com/dmitrymomot/vanitystore/pkg/config"
	"github.com/dmitrymomot/vanitystore/pkg/logger"
	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// settings is everything the commands need, read from the environment with
// flags taking precedence.
type settings struct {
	Mongo      mongo.Config
	Database   string `env:"MONGODB_DATABASE" envDefault:"vanity"`
	Collection string `env:"MONGODB_COLLECTION" envDefault:"addresses"`
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogFormat  string `env:"LOG_FORMAT"`
	LogLevel   string `env:"LOG_LEVEL"`
}

// rootOptions holds global flags and the state built from them.
type rootOptions struct {
	EnvFiles   []string
	URI        string
	Database   string
	Collection string
	LogFormat  string
	LogLevel   string

	settings settings
	log      *slog.Logger
	extra    []addrstore.Option
}

// commandKey carries the running subcommand name for log records.
type commandKey struct{}

// flagEnv maps persistent flags to the env variables they override.
var flagEnv = map[string]string{
	"uri":        "MONGODB_URL",
	"database":   "MONGODB_DATABASE",
	"collection": "MONGODB_COLLECTION",
	"log-format": "LOG_FORMAT",
	"log-level":  "LOG_LEVEL",
}

// newRootCommand builds the CLI. extra is appended to the options of every
// addrstore.Open call.
func newRootCommand(extra ...addrstore.Option) *cobra.Command {
	opts := &rootOptions{extra: extra}

	cmd := &cobra.Command{
		Use:   "vanitystore",
		Short: "Store vanity address generator results in MongoDB",
		Long: `vanitystore saves addresses found by a vanity address generator into a
MongoDB collection, one document per address:

  { "address": ..., "private_key": ..., "pattern": ..., "created_at": "YYYY-MM-DD HH:MM:SS" }

Connection settings come from MONGODB_URL, MONGODB_DATABASE and
MONGODB_COLLECTION (optionally loaded from --env-file) and can be
overridden with flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&opts.EnvFiles, "env-file", nil, "load variables from these .env files")
	pf.StringVar(&opts.URI, "uri", "", "MongoDB connection string (env MONGODB_URL)")
	pf.StringVar(&opts.Database, "database", "", "database name (env MONGODB_DATABASE, default vanity)")
	pf.StringVar(&opts.Collection, "collection", "", "collection name (env MONGODB_COLLECTION, default addresses)")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format: text|json (env LOG_FORMAT, default by APP_ENV)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug|info|warn|error (env LOG_LEVEL, default by APP_ENV)")

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newSaveCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newRecentCommand(opts))

	return cmd
}

// prepare loads env files (./.env when none are given), resolves settings and
// builds the logger. Every
// subcommand calls it first so that help works without a configured store.
func (o *rootOptions) prepare(cmd *cobra.Command) error {
	if len(o.EnvFiles) > 0 {
		if err := config.LoadEnv(o.EnvFiles...); err != nil {
			return err
		}
	} else if err := config.LoadDefaultEnv(); err != nil {
		return err
	}

	values := map[string]string{
		"uri":        o.URI,
		"database":   o.Database,
		"collection": o.Collection,
		"log-format": o.LogFormat,
		"log-level":  o.LogLevel,
	}
	overrides := make(map[string]string)
	for name, key := range flagEnv {
		if cmd.Flags().Changed(name) {
			overrides[key] = values[name]
		}
	}

	if err := config.Parse(&o.settings, overrides); err != nil {
		return err
	}

	// APP_ENV picks the defaults; LOG_FORMAT and LOG_LEVEL override them.
	logOpts := []logger.Option{
		logger.WithEnvironment(o.settings.Env, "vanitystore"),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextValue("command", commandKey{}),
		logger.WithAttr(slog.String("version", version)),
	}
	if o.settings.LogFormat != "" {
		format, err := logger.ParseFormat(o.settings.LogFormat)
		if err != nil {
			return errors.Join(config.ErrParsingConfig, err)
		}
		logOpts = append(logOpts, logger.WithFormat(format))
	}
	if o.settings.LogLevel != "" {
		level, err := logger.ParseLevel(o.settings.LogLevel)
		if err != nil {
			return errors.Join(config.ErrParsingConfig, err)
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	o.log = logger.New(logOpts...)
	cmd.SetContext(context.WithValue(cmd.Context(), commandKey{}, cmd.Name()))
	return nil
}

// open connects with the resolved settings. Callers must Close the gateway.
func (o *rootOptions) open(ctx context.Context) (*addrstore.Gateway, error) {
	s := o.settings
	gwOpts := append([]addrstore.Option{
		addrstore.WithMongoConfig(s.Mongo),
		addrstore.WithLogger(o.log),
	}, o.extra...)
	return addrstore.Open(ctx, s.Mongo.ConnectionURL, s.Database, s.Collection, gwOpts...)
}

// withGateway opens a gateway, runs fn and closes the gateway, returning the
// first error.
func (o *rootOptions) withGateway(ctx context.Context, fn func(*addrstore.Gateway) error) error {
	gw, err := o.open(ctx)
	if err != nil {
		return err
	}
	err = fn(gw)
	if cerr := gw.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
