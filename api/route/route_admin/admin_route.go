package route_admin

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller/controller_admin"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/nsvip/anidex-backend/repository/repository_catalog"
	"github.com/nsvip/anidex-backend/usecase/usecase_admin"
)

// NewAdminAnimeRouter 管理端维护面，挂载在JWT保护的分组下
func NewAdminAnimeRouter(app *bootstrap.Application, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	repo := repository_catalog.NewAnimeRepository(
		db,
		domain.CollectionCatalogAnime,
		app.Env.BatchQueryLimit,
		nil,
		app.Logger,
	)

	service := usecase_admin.NewAdminAnimeUsecase(repo, app.Logger, timeout)
	ctrl := controller_admin.NewAdminAnimeController(service)

	group.POST("/anime", ctrl.Create)
	group.GET("/anime/:id", ctrl.GetByID)
	group.PUT("/anime/:id", ctrl.Update)
	group.DELETE("/anime/:id", ctrl.Delete)
}
