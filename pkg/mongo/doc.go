// Package mongo provides the MongoDB connection layer used by the address store.
//
// It wraps the official driver (go.mongodb.org/mongo-driver/v2) with a small,
// environment-driven API: Config carries env tags understood by pkg/config,
// ClientOptions turns it into driver options, and New/Ping/Healthcheck cover
// the lifecycle of a client. Nothing here retries; the only retry
// behaviour is the driver's own retryable writes and reads.
//
// Key defaults:
//   - Server selection timeout of five seconds, so an unreachable deployment
//     fails fast instead of blocking for the driver default of thirty seconds
//   - Retryable writes enabled
//
// # Usage
//
//	cfg := mongo.DefaultConfig("mongodb://localhost:27017")
//
//	client, err := mongo.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect(context.Background())
//
//	if err := mongo.Ping(ctx, client); err != nil {
//		log.Fatal(err)
//	}
//
//	health := mongo.Healthcheck(mongo.ClientPinger(client))
//	if err := health(ctx); err != nil {
//		log.Println("mongo is unavailable:", err)
//	}
//
// # Name validation
//
// The driver resolves databases and collections lazily, so an invalid name only
// surfaces on the first operation. ValidateDatabaseName and
// ValidateCollectionName apply the server's naming rules up front.
//
// # Error Handling
//
// Failures are joined with package sentinels (ErrInvalidURI, ErrSRVLookup,
// ErrFailedToConnectToMongo, ErrPingFailed, ...) so callers can classify them
// with errors.Is while keeping the driver's message.
package mongo
