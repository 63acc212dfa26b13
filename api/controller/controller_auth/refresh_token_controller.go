package controller_auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/domain/domain_auth"
)

type RefreshTokenController struct {
	RefreshTokenUsecase domain_auth.RefreshTokenUsecase
	Env                 *bootstrap.Env
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken POST /auth/refresh 旧刷新令牌换新令牌对
func (rtc *RefreshTokenController) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	id, err := rtc.RefreshTokenUsecase.ExtractIDFromToken(req.RefreshToken, rtc.Env.RefreshTokenSecret)
	if err != nil {
		controller.ErrorResponse(c, http.StatusUnauthorized, "INVALID_TOKEN", "user not found from token")
		return
	}

	user, err := rtc.RefreshTokenUsecase.GetUserByID(c.Request.Context(), id)
	if err != nil || user == nil {
		controller.ErrorResponse(c, http.StatusUnauthorized, "INVALID_TOKEN", "user not found")
		return
	}

	accessToken, err := rtc.RefreshTokenUsecase.CreateAccessToken(user, rtc.Env.AccessTokenSecret, rtc.Env.AccessTokenExpiryHour)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", err.Error())
		return
	}

	refreshToken, err := rtc.RefreshTokenUsecase.CreateRefreshToken(user, rtc.Env.RefreshTokenSecret, rtc.Env.RefreshTokenExpiryHour)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(c, "tokens", loginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, 1)
}
