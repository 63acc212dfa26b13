package route_auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller/controller_auth"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/nsvip/anidex-backend/repository/repository_auth"
	"github.com/nsvip/anidex-backend/usecase/usecase_auth"
)

func NewLoginRouter(app *bootstrap.Application, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	userRepo := repository_auth.NewUserRepository(db, domain.CollectionUser)
	lc := &controller_auth.LoginController{
		LoginUsecase: usecase_auth.NewLoginUsecase(userRepo, timeout),
		Env:          app.Env,
	}
	group.POST("/auth/login", lc.Login)
}

func NewRefreshTokenRouter(app *bootstrap.Application, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	userRepo := repository_auth.NewUserRepository(db, domain.CollectionUser)
	rtc := &controller_auth.RefreshTokenController{
		RefreshTokenUsecase: usecase_auth.NewRefreshTokenUsecase(userRepo, timeout),
		Env:                 app.Env,
	}
	group.POST("/auth/refresh", rtc.RefreshToken)
}
