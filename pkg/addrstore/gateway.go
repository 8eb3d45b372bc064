package addrstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/vanitystore/pkg/logger"
	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// SentinelID is the _id of the throwaway document written and removed by Open
// to verify write permission.
const SentinelID = "test"

// Gateway is a validated connection to one collection.
//
// The client and collection handles are set and cleared together: a Gateway
// either holds both or neither. Save and Recent may be called from several
// goroutines; the gateway adds no locking around driver calls.
type Gateway struct {
	uri        string
	database   string
	collection string

	mu     sync.RWMutex
	client Client
	coll   Collection
	rt     *Runtime

	log *slog.Logger
	now func() time.Time
}

// Open connects to uri, pings the deployment, resolves database and
// collection, and verifies write permission with a sentinel document.
//
// Every failure releases whatever was acquired before returning. Errors wrap
// ErrInvalidArgument, ErrConfig, ErrConnection, ErrResolution,
// ErrPermission or ErrRuntimeClosed.
func Open(ctx context.Context, uri, database, collection string, opts ...Option) (*Gateway, error) {
	if uri == "" || database == "" || collection == "" {
		return nil, errors.Join(ErrInvalidArgument, errors.New("uri, database and collection are required"))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	g := &Gateway{
		uri:        uri,
		database:   database,
		collection: collection,
		log: o.log.With(
			logger.Component("addrstore"),
			logger.Database(database),
			logger.Collection(collection),
		),
		now: o.now,
	}

	if err := mongo.ValidateURI(uri); err != nil {
		if errors.Is(err, mongo.ErrSRVLookup) {
			g.log.ErrorContext(ctx, "cannot resolve mongo srv record", logger.Error(err))
			return nil, errors.Join(ErrConnection, err)
		}
		g.log.ErrorContext(ctx, "malformed mongo uri", logger.Error(err))
		return nil, errors.Join(ErrConfig, err)
	}

	g.rt = o.runtime
	if err := o.runtime.register(g); err != nil {
		return nil, err
	}

	cfg := o.mongo
	cfg.ConnectionURL = uri
	if cfg.ServerSelectionTimeout <= 0 {
		cfg.ServerSelectionTimeout = mongo.DefaultServerSelectionTimeout
	}

	start := time.Now()
	client, err := o.driver.Connect(ctx, cfg)
	if err != nil {
		g.abort(ctx, nil)
		g.log.ErrorContext(ctx, "cannot create mongo client", logger.Error(err))
		return nil, errors.Join(ErrConnection, err)
	}

	if err := client.Ping(ctx); err != nil {
		g.abort(ctx, client)
		g.log.ErrorContext(ctx, "cannot reach mongo", logger.Error(err), logger.Duration(time.Since(start)))
		return nil, errors.Join(ErrConnection, err)
	}

	if err := errors.Join(
		mongo.ValidateDatabaseName(database),
		mongo.ValidateCollectionName(database, collection),
	); err != nil {
		g.abort(ctx, client)
		g.log.ErrorContext(ctx, "cannot resolve collection", logger.Error(err))
		return nil, errors.Join(ErrResolution, err)
	}

	coll := client.Collection(database, collection)
	if coll == nil {
		g.abort(ctx, client)
		return nil, errors.Join(ErrResolution, errors.New("driver returned no collection handle"))
	}

	if err := g.writeCheck(ctx, coll); err != nil {
		g.abort(ctx, client)
		g.log.ErrorContext(ctx, "no write permission", logger.Error(err))
		return nil, errors.Join(ErrPermission, err)
	}

	g.mu.Lock()
	if g.rt == nil {
		// The runtime shut down while Open was in flight.
		g.mu.Unlock()
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, ErrRuntimeClosed
	}
	g.client, g.coll = client, coll
	g.mu.Unlock()

	g.log.InfoContext(ctx, "address store ready", logger.Duration(time.Since(start)))
	return g, nil
}

// writeCheck inserts and removes the sentinel document. Any insert error fails the
// check except a duplicate key: that means a sentinel from an earlier run is
// still there, so writeCheck goes on to delete it. A document with _id "test"
// in the target collection is therefore removed by Open.
func (g *Gateway) writeCheck(ctx context.Context, coll Collection) error {
	doc := bson.D{
		{Key: "_id", Value: SentinelID},
		{Key: "test", Value: "test"},
	}
	if err := coll.InsertOne(ctx, doc); err != nil && !mongodriver.IsDuplicateKeyError(err) {
		return err
	}
	if err := coll.DeleteByID(ctx, SentinelID); err != nil {
		g.log.WarnContext(ctx, "sentinel document not removed", logger.Error(err))
	}
	return nil
}

// abort releases resources acquired by a failed Open.
func (g *Gateway) abort(ctx context.Context, client Client) {
	if client != nil {
		if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
			g.log.WarnContext(ctx, "disconnect after failed open", logger.Error(err))
		}
	}
	g.mu.Lock()
	rt := g.rt
	g.rt = nil
	g.mu.Unlock()
	if rt != nil {
		rt.unregister(g)
	}
}

// Save inserts a new record for address. privateKey may be empty and is then
// stored as "". created_at is taken from the gateway clock.
func (g *Gateway) Save(ctx context.Context, address, privateKey, pattern string) error {
	coll, err := g.handle()
	if err != nil {
		return err
	}
	rec, err := NewRecord(address, privateKey, pattern, g.now())
	if err != nil {
		return err
	}
	return g.insert(ctx, coll, rec)
}

// SaveRecord inserts rec. Its ID and CreatedAt are ignored: the server assigns
// the ID and created_at is stamped now.
func (g *Gateway) SaveRecord(ctx context.Context, rec Record) error {
	return g.Save(ctx, rec.Address, rec.PrivateKey, rec.Pattern)
}

func (g *Gateway) insert(ctx context.Context, coll Collection, rec Record) error {
	if err := coll.InsertOne(ctx, rec); err != nil {
		g.log.ErrorContext(ctx, "address not saved",
			logger.Address(rec.Address),
			logger.Pattern(rec.Pattern),
			logger.Error(err),
		)
		return errors.Join(ErrWrite, err)
	}
	g.log.DebugContext(ctx, "address saved", logger.Address(rec.Address), logger.Pattern(rec.Pattern))
	return nil
}

// Recent returns up to limit records, newest first.
func (g *Gateway) Recent(ctx context.Context, limit int64) ([]Record, error) {
	coll, err := g.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errors.Join(ErrInvalidArgument, errors.New("limit must be positive"))
	}
	records, err := coll.FindRecent(ctx, limit, SentinelID)
	if err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	return records, nil
}

// Healthcheck returns a ping-based check for the gateway's deployment.
func (g *Gateway) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if g == nil {
			return ErrNotInitialized
		}
		g.mu.RLock()
		client := g.client
		g.mu.RUnlock()
		if client == nil {
			return ErrNotInitialized
		}
		return mongo.Healthcheck(client)(ctx)
	}
}

// Close releases the collection handle, disconnects the client and drops the
// gateway from its runtime. It is safe on a nil or already closed Gateway;
// only the first call can return an error.
func (g *Gateway) Close(ctx context.Context) error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	client, rt := g.client, g.rt
	g.coll = nil
	g.client = nil
	g.rt = nil
	g.mu.Unlock()

	var err error
	if client != nil {
		if derr := client.Disconnect(ctx); derr != nil {
			g.log.WarnContext(ctx, "disconnect failed", logger.Error(derr))
			err = errors.Join(ErrConnection, derr)
		}
	}
	if rt != nil {
		rt.unregister(g)
	}
	if client != nil {
		g.log.DebugContext(ctx, "address store closed")
	}
	return err
}

// initialized reports whether the gateway holds live handles.
func (g *Gateway) initialized() bool {
	_, err := g.handle()
	return err == nil
}

// Database returns the database name the gateway was opened with.
func (g *Gateway) Database() string { return g.database }

// Collection returns the collection name the gateway was opened with.
func (g *Gateway) Collection() string { return g.collection }

func (g *Gateway) handle() (Collection, error) {
	if g == nil {
		return nil, ErrNotInitialized
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.coll == nil {
		return nil, ErrNotInitialized
	}
	return g.coll, nil
}
