package book

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupMongoTestDB(t *testing.T) *mongo.Database {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("Skipping test: cannot ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("bookcatalog_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoRepo(t *testing.T) {
	db := setupMongoTestDB(t)
	n := 0
	runRepositoryContract(t, func(t *testing.T) Repository {
		n++
		return NewMongoRepo(db.Collection(fmt.Sprintf("books_%d", n)), 5*time.Second)
	})
}

func TestUpdateDocument(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("set and unset", func(t *testing.T) {
		doc := updateDocument(Patch{Title: Some("New"), Genre: Null[string](), Rating: Some(4.5)}, now)

		assert.Equal(t, bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "title", Value: "New"},
				{Key: "rating", Value: 4.5},
				{Key: "updatedAt", Value: now},
			}},
			{Key: "$unset", Value: bson.D{
				{Key: "genre", Value: ""},
			}},
		}, doc)
	})

	t.Run("empty patch only touches updatedAt", func(t *testing.T) {
		doc := updateDocument(Patch{}, now)

		assert.Equal(t, bson.D{
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		}, doc)
	})
}
