package domain_auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 管理端账号，密码只存bcrypt散列
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt primitive.DateTime `bson:"created_at" json:"-"`
	UpdatedAt primitive.DateTime `bson:"updated_at" json:"-"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}

// LoginUsecase 登录用例接口
type LoginUsecase interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateAccessToken(user *User, secret string, expiry int) (string, error)
	CreateRefreshToken(user *User, secret string, expiry int) (string, error)
}

type RefreshTokenUsecase interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	CreateAccessToken(user *User, secret string, expiry int) (string, error)
	CreateRefreshToken(user *User, secret string, expiry int) (string, error)
	ExtractIDFromToken(requestToken string, secret string) (string, error)
}
