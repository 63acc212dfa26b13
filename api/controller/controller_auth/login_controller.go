package controller_auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/domain/domain_auth"
	"golang.org/x/crypto/bcrypt"
)

type LoginController struct {
	LoginUsecase domain_auth.LoginUsecase
	Env          *bootstrap.Env
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login POST /auth/login 账号密码换令牌
func (lc *LoginController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := lc.LoginUsecase.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if user == nil {
		controller.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "user not found with the given email")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		controller.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	}

	accessToken, err := lc.LoginUsecase.CreateAccessToken(user, lc.Env.AccessTokenSecret, lc.Env.AccessTokenExpiryHour)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", err.Error())
		return
	}

	refreshToken, err := lc.LoginUsecase.CreateRefreshToken(user, lc.Env.RefreshTokenSecret, lc.Env.RefreshTokenExpiryHour)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(c, "tokens", loginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, 1)
}
