package main

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
	"github.com/dmitrymomot/vanitystore/pkg/mongo"
)

// memDriver keeps saved records in memory.
type memDriver struct {
	mu         sync.Mutex
	cfg        mongo.Config
	database   string
	collection string
	records    []addrstore.Record
	pingErr    error
	insertErr  error
}

func (d *memDriver) Connect(_ context.Context, cfg mongo.Config) (addrstore.Client, error) {
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()
	return memClient{d}, nil
}

func (d *memDriver) saved() []addrstore.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.records)
}

type memClient struct{ d *memDriver }

func (c memClient) Ping(context.Context) error { return c.d.pingErr }

func (c memClient) Collection(database, name string) addrstore.Collection {
	c.d.mu.Lock()
	c.d.database, c.d.collection = database, name
	c.d.mu.Unlock()
	return memCollection(c)
}

func (c memClient) Disconnect(context.Context) error { return nil }

type memCollection struct{ d *memDriver }

func (c memCollection) InsertOne(_ context.Context, doc any) error {
	rec, ok := doc.(addrstore.Record)
	if !ok {
		return nil
	}
	if c.d.insertErr != nil {
		return c.d.insertErr
	}
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	rec.ID = bson.NewObjectID()
	c.d.records = append(c.d.records, rec)
	return nil
}

func (c memCollection) DeleteByID(context.Context, any) error { return nil }

func (c memCollection) FindRecent(_ context.Context, limit int64, _ any) ([]addrstore.Record, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	out := slices.Clone(c.d.records)
	slices.Reverse(out)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
