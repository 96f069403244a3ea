package mongo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client represents a MongoDB client bound to the storefront database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Database returns the storefront database.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects the client for graceful shutdown.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return c.client.Disconnect(ctx)
}

// MustNewClient connects to MONGO_URI and ensures the order indexes exist.
func MustNewClient() *Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		panic(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		panic(err)
	}

	name := viper.GetString("mongo.database")
	if name == "" {
		name = "styleaura"
	}
	db := client.Database(name)

	if err := EnsureOrderIndexes(db); err != nil {
		panic(err)
	}

	slog.Info("MongoDB connected", "database", name)

	return &Client{
		client: client,
		db:     db,
	}
}

// EnsureOrderIndexes creates the index backing newest-first listing.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}

	if _, err := db.Collection("orders").Indexes().CreateOne(ctx, createdAtIndex); err != nil {
		slog.Error("Failed to create orders index", "index", "createdAt_desc", "error", err)

		return err
	}

	return nil
}
