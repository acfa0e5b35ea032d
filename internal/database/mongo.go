package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongo connects to uri and verifies the connection with a ping, all
// within timeout.
//
// Typical usage:
//
//	client, err := database.NewMongo(ctx, cfg.MongoURI, 10*time.Second)
//	if err != nil { … }
//	defer client.Disconnect(context.Background())
func NewMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		// Disconnect in case of ping failure to avoid leaking sockets.
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
