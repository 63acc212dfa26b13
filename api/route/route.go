package route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/middleware"
	"github.com/nsvip/anidex-backend/api/route/route_admin"
	"github.com/nsvip/anidex-backend/api/route/route_auth"
	"github.com/nsvip/anidex-backend/api/route/route_catalog"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/mongo"
)

// Setup 挂载全部路由。公共查询面匿名可达，管理面走JWT
func Setup(app *bootstrap.Application, timeout time.Duration, db mongo.Database, gin *gin.Engine) {
	publicRouter := gin.Group("/api/v1")
	route_catalog.NewCatalogRouter(app, timeout, db, publicRouter)
	route_auth.NewLoginRouter(app, timeout, db, publicRouter)
	route_auth.NewRefreshTokenRouter(app, timeout, db, publicRouter)

	protectedRouter := gin.Group("/api/v1/admin")
	protectedRouter.Use(middleware.JwtAuthMiddleware(app.Env.AccessTokenSecret))
	route_admin.NewAdminAnimeRouter(app, timeout, db, protectedRouter)
}
