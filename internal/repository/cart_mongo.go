package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
	ttl        time.Duration
}

// NewMongoCartRepository returns a durable CartRepository backed by the
// "carts" collection, one document per session.
func NewMongoCartRepository(db *mongo.Database, ttl time.Duration) CartRepository {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &mongoCartRepository{
		collection: db.Collection("carts"),
		ttl:        ttl,
	}
}

func (m mongoCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"_id": sessionID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	// The TTL index evicts eventually; the read path enforces it exactly.
	if time.Since(cart.UpdatedAt) > m.ttl {
		return nil, ErrCartNotFound
	}

	return &cart, nil
}

func (m mongoCartRepository) Upsert(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	filter := bson.M{"_id": cart.SessionID}
	update := bson.M{"$set": cart}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	return nil
}

func (m mongoCartRepository) Delete(ctx context.Context, sessionID string) error {
	filter := bson.M{"_id": sessionID}

	_, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

// CreateIndexes sets up the TTL index matching the store's idle window.
func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
