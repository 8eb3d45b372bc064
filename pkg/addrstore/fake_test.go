package addrstore_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// fakeDriver is an in-memory addrstore.Driver. Each err field makes the
// matching call fail.
type fakeDriver struct {
	connectErr    error
	pingErr       error
	insertErr     error
	sentinelErr      error
	deleteErr     error
	disconnectErr error
	findErr       error
	nilCollection bool

	mu      sync.Mutex
	cfg     mongo.Config
	clients []*fakeClient
	store   *fakeStore
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{store: &fakeStore{}}
}

func (d *fakeDriver) Connect(_ context.Context, cfg mongo.Config) (addrstore.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	c := &fakeClient{driver: d}
	d.clients = append(d.clients, c)
	return c, nil
}

func (d *fakeDriver) lastClient() *fakeClient {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.clients) == 0 {
		return nil
	}
	return d.clients[len(d.clients)-1]
}

type fakeClient struct {
	driver *fakeDriver

	mu          sync.Mutex
	disconnects int
	database    string
	collection  string
}

func (c *fakeClient) Ping(context.Context) error { return c.driver.pingErr }

func (c *fakeClient) Collection(database, name string) addrstore.Collection {
	c.mu.Lock()
	c.database, c.collection = database, name
	c.mu.Unlock()
	if c.driver.nilCollection {
		return nil
	}
	return &fakeCollection{driver: c.driver}
}

func (c *fakeClient) Disconnect(context.Context) error {
	c.mu.Lock()
	c.disconnects++
	c.mu.Unlock()
	return c.driver.disconnectErr
}

func (c *fakeClient) disconnected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnects
}

type fakeStore struct {
	mu        sync.Mutex
	records   []addrstore.Record
	sentinels    int
	sentinelLeft bool
	deletes   []any
}

func (s *fakeStore) saved() []addrstore.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

type fakeCollection struct {
	driver *fakeDriver
}

func (c *fakeCollection) InsertOne(_ context.Context, document any) error {
	s := c.driver.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch doc := document.(type) {
	case bson.D:
		if c.driver.sentinelErr != nil {
			return c.driver.sentinelErr
		}
		s.sentinels++
		s.sentinelLeft = true
		return nil
	case addrstore.Record:
		if c.driver.insertErr != nil {
			return c.driver.insertErr
		}
		doc.ID = bson.NewObjectID()
		s.records = append(s.records, doc)
		return nil
	default:
		return errors.New("fake: unsupported document type")
	}
}

func (c *fakeCollection) DeleteByID(_ context.Context, id any) error {
	s := c.driver.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	if c.driver.deleteErr != nil {
		return c.driver.deleteErr
	}
	if id == addrstore.SentinelID {
		s.sentinelLeft = false
	}
	return nil
}

func (c *fakeCollection) FindRecent(_ context.Context, limit int64, _ any) ([]addrstore.Record, error) {
	if c.driver.findErr != nil {
		return nil, c.driver.findErr
	}
	s := c.driver.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.records)
	slices.Reverse(out)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
