package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"balilove/internal/app/policies"
)

const quotesCollection = "quote_archive"

// QuoteStore keeps archived quote documents for a limited retention window.
type QuoteStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewQuoteStore(ctx context.Context, db *mongo.Database, retention time.Duration) (*QuoteStore, error) {
	col := db.Collection(quotesCollection)
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(retention.Seconds())),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("mongo: quote archive index: %w", err)
	}
	return &QuoteStore{col: col, now: time.Now}, nil
}

// Archive upserts the raw JSON quote under key and returns a mongo locator.
func (s *QuoteStore) Archive(ctx context.Context, key string, document []byte) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("mongo: quote key is required")
	}
	doc := quoteDocument{
		ID:        key,
		Body:      document,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true)); err != nil {
		return "", err
	}
	return fmt.Sprintf("mongodb://%s/%s/%s", s.col.Database().Name(), quotesCollection, key), nil
}

// Load returns a previously archived document.
func (s *QuoteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc quoteDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Body, nil
}

type quoteDocument struct {
	ID        string    `bson:"_id"`
	Body      []byte    `bson:"body"`
	CreatedAt time.Time `bson:"created_at"`
}

var _ policies.QuoteArchive = (*QuoteStore)(nil)
