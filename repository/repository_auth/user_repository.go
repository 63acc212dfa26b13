package repository_auth

import (
	"context"

	"github.com/nsvip/anidex-backend/domain/domain_auth"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/nsvip/anidex-backend/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRepository 账号存储，通用CRUD委托给泛型基类
type userRepository struct {
	base *repository.BaseMongoRepository[domain_auth.User]
}

func NewUserRepository(db mongo.Database, collection string) domain_auth.UserRepository {
	return &userRepository{
		base: repository.NewBaseMongoRepository[domain_auth.User](db, collection),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain_auth.User) error {
	return r.base.Create(ctx, user)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	return r.base.GetOneByFilter(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain_auth.User, error) {
	return r.base.GetByID(ctx, id)
}
