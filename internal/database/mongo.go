package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 15 * time.Second

// ConnectMongo dials the cluster and verifies it with a primary ping.
// connectTimeout bounds the dial and the ping together; zero falls back
// to the default.
func ConnectMongo(uri, dbName string, connectTimeout time.Duration, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Errorf("mongo connect %s: %v", dbName, err)
		return nil, nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorf("mongo ping %s: %v", dbName, err)
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Infow("mongo connected", "database", dbName)
	return client.Database(dbName), client, nil
}
