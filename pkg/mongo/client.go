package mongo

import (
	"context"
	"errors"
	"net"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ClientOptions builds driver options from cfg.
// Options set here take precedence over the same options encoded in the URI.
func ClientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)

	timeout := cfg.ServerSelectionTimeout
	if timeout <= 0 {
		timeout = DefaultServerSelectionTimeout
	}
	opts.SetServerSelectionTimeout(timeout)

	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	return opts
}

// ValidateURI reports whether uri is a well-formed MongoDB connection string.
//
// A mongodb+srv URI is resolved through DNS while it is parsed; when that
// lookup fails the error wraps ErrSRVLookup instead of ErrInvalidURI, since the
// string itself is fine and the deployment is what cannot be found. Other URIs
// are checked without network activity.
func ValidateURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return errors.Join(ErrInvalidURI, errors.New("empty connection string"))
	}
	if err := options.Client().ApplyURI(uri).Validate(); err != nil {
		return classifyURIError(err)
	}
	return nil
}

func classifyURIError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errors.Join(ErrSRVLookup, err)
	}
	return errors.Join(ErrInvalidURI, err)
}

// New constructs a client for cfg without contacting the server.
// The driver connects lazily; use Ping to verify the deployment is reachable.
func New(cfg Config) (*mongo.Client, error) {
	if err := ValidateURI(cfg.ConnectionURL); err != nil {
		return nil, err
	}
	client, err := mongo.Connect(ClientOptions(cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}
	return client, nil
}

// Ping runs the administrative ping command against the admin database.
func Ping(ctx context.Context, client *mongo.Client) error {
	cmd := bson.D{{Key: "ping", Value: 1}}
	if err := client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		return errors.Join(ErrPingFailed, err)
	}
	return nil
}
