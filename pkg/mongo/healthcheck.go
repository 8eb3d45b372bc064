package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Pinger is anything that can run the administrative ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ClientPinger pings client with Ping.
func ClientPinger(client *mongo.Client) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		return Ping(ctx, client)
	})
}

// Healthcheck returns a health check function suitable for readiness sentinels
// or for a CLI "check" command.
//
// A passing check means the deployment answered a ping within the configured
// server selection timeout.
func Healthcheck(p Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
