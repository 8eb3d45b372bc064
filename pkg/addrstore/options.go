package addrstore

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/vanitystore/pkg/logger"
	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	mongo   mongo.Config
	driver  Driver
	runtime *Runtime
	log     *slog.Logger
	now     func() time.Time
}

func defaultOptions() *openOptions {
	return &openOptions{
		mongo:   mongo.DefaultConfig(""),
		driver:  MongoDriver{},
		runtime: defaultRuntime,
		log:     logger.Discard(),
		now:     time.Now,
	}
}

// WithMongoConfig replaces the connection settings. The URI passed to Open
// always overrides cfg.ConnectionURL.
func WithMongoConfig(cfg mongo.Config) Option {
	return func(o *openOptions) { o.mongo = cfg }
}

// WithDriver swaps the client implementation. Nil is ignored.
func WithDriver(d Driver) Option {
	return func(o *openOptions) {
		if d != nil {
			o.driver = d
		}
	}
}

// WithRuntime registers the gateway with r instead of the default runtime.
func WithRuntime(r *Runtime) Option {
	return func(o *openOptions) {
		if r != nil {
			o.runtime = r
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock sets the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(o *openOptions) {
		if now != nil {
			o.now = now
		}
	}
}
