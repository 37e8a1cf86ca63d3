package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cookbook/internal/config"
)

const defaultMongoTimeout = 10 * time.Second

var mongoConnect = mongo.Connect

// NewMongo connects to MongoDB and verifies the primary is reachable.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Client, error) {
	if c.URI == "" {
		return nil, fmt.Errorf("invalid mongo config: uri is required")
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultMongoTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongoConnect(ctx, options.Client().ApplyURI(c.URI).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoPinger adapts a client to the PingContext shape health checks expect.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
