package addrstore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// Driver constructs clients. The default is backed by the official MongoDB
// driver; tests substitute an in-memory implementation.
type Driver interface {
	// Connect builds a client for cfg. It must not block on the network.
	Connect(ctx context.Context, cfg mongo.Config) (Client, error)
}

// Client is the subset of a MongoDB client the gateway uses. Ping runs the
// administrative ping.
type Client interface {
	mongo.Pinger
	Collection(database, name string) Collection
	Disconnect(ctx context.Context) error
}

// Collection is the subset of a MongoDB collection the gateway uses.
type Collection interface {
	InsertOne(ctx context.Context, document any) error
	DeleteByID(ctx context.Context, id any) error
	// FindRecent returns up to limit records, newest first, skipping the
	// document whose _id equals exclude.
	FindRecent(ctx context.Context, limit int64, exclude any) ([]Record, error)
}

// MongoDriver is the Driver used by Open unless WithDriver is given.
type MongoDriver struct{}

func (MongoDriver) Connect(_ context.Context, cfg mongo.Config) (Client, error) {
	c, err := mongo.New(cfg)
	if err != nil {
		return nil, err
	}
	return &mongoClient{Pinger: mongo.ClientPinger(c), client: c}, nil
}

type mongoClient struct {
	mongo.Pinger
	client *mongodriver.Client
}

func (c *mongoClient) Collection(database, name string) Collection {
	return &mongoCollection{coll: c.client.Database(database).Collection(name)}
}

func (c *mongoClient) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongodriver.Collection
}

func (c *mongoCollection) InsertOne(ctx context.Context, document any) error {
	_, err := c.coll.InsertOne(ctx, document)
	return err
}

func (c *mongoCollection) DeleteByID(ctx context.Context, id any) error {
	_, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (c *mongoCollection) FindRecent(ctx context.Context, limit int64, exclude any) ([]Record, error) {
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$ne", Value: exclude}}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
