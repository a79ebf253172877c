package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/persistence"
)

// CartRepository defines persistence access for the per-user cart document.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type cartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository returns a Mongo-backed implementation.
func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{collection: db.Collection(persistence.CollectionCarts)}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save upserts the cart keyed by user id, recomputing totals first.
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart.ID == "" {
		cart.ID = primitive.NewObjectID().Hex()
	}
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"user_id": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
