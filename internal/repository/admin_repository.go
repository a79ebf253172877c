package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/persistence"
)

// AdminRepository defines persistence access for console operators.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type adminRepository struct {
	collection *mongo.Collection
}

// NewAdminRepository returns a Mongo-backed implementation.
func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &adminRepository{collection: db.Collection(persistence.CollectionAdmins)}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if admin.ID == "" {
		admin.ID = primitive.NewObjectID().Hex()
	}
	admin.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, admin)
	return err
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.fetchSingle(ctx, bson.M{"_id": id})
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.fetchSingle(ctx, bson.M{"email": email})
}

func (r *adminRepository) fetchSingle(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
