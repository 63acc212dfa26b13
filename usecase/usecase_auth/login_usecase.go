package usecase_auth

import (
	"context"
	"time"

	"github.com/nsvip/anidex-backend/domain/domain_auth"
	"github.com/nsvip/anidex-backend/util/tokenutil"
)

type loginUsecase struct {
	userRepository domain_auth.UserRepository
	contextTimeout time.Duration
}

func NewLoginUsecase(userRepository domain_auth.UserRepository, timeout time.Duration) domain_auth.LoginUsecase {
	return &loginUsecase{
		userRepository: userRepository,
		contextTimeout: timeout,
	}
}

func (lu *loginUsecase) GetUserByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, lu.contextTimeout)
	defer cancel()
	return lu.userRepository.GetByEmail(ctx, email)
}

func (lu *loginUsecase) CreateAccessToken(user *domain_auth.User, secret string, expiry int) (string, error) {
	return tokenutil.CreateAccessToken(user, secret, expiry)
}

func (lu *loginUsecase) CreateRefreshToken(user *domain_auth.User, secret string, expiry int) (string, error) {
	return tokenutil.CreateRefreshToken(user, secret, expiry)
}
