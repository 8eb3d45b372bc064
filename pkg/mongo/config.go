package mongo

import "time"

// DefaultServerSelectionTimeout bounds how long the driver waits for a suitable server.
const DefaultServerSelectionTimeout = 5 * time.Second

// Config represents the configuration for the MongoDB connection.
type Config struct {
	ConnectionURL          string        `env:"MONGODB_URL,required"`                             // ConnectionURL is the URI of the deployment.
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"` // ServerSelectionTimeout bounds server selection for every operation.
	ConnectTimeout         time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`         // ConnectTimeout is the timeout for establishing a socket.
	MaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`           // MaxPoolSize is the maximum number of connections in the pool.
	MinPoolSize            uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"0"`             // MinPoolSize is the minimum number of connections in the pool.
	MaxConnIdleTime        time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`     // MaxConnIdleTime is how long a connection can stay idle in the pool.
	RetryWrites            bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`           // RetryWrites lets the driver retry a write once on transient errors.
	RetryReads             bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`            // RetryReads lets the driver retry a read once on transient errors.
	AppName                string        `env:"MONGODB_APP_NAME" envDefault:"vanitystore"`        // AppName is reported to the server in the handshake.
}

// DefaultConfig returns the configuration used when nothing else is supplied:
// a five second server selection budget and retryable writes enabled.
func DefaultConfig(uri string) Config {
	return Config{
		ConnectionURL:          uri,
		ServerSelectionTimeout: DefaultServerSelectionTimeout,
		ConnectTimeout:         10 * time.Second,
		MaxPoolSize:            100,
		MaxConnIdleTime:        300 * time.Second,
		RetryWrites:            true,
		RetryReads:             true,
		AppName:                "vanitystore",
	}
}
