package route_catalog

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller/controller_catalog"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/nsvip/anidex-backend/repository/repository_catalog"
	"github.com/nsvip/anidex-backend/repository/repository_provider"
	"github.com/nsvip/anidex-backend/usecase/usecase_catalog"
)

// NewCatalogRouter 公共目录查询面。存储、外部源客户端与门面都在这里组装
func NewCatalogRouter(app *bootstrap.Application, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	repo := repository_catalog.NewAnimeRepository(
		db,
		domain.CollectionCatalogAnime,
		app.Env.BatchQueryLimit,
		splitGenres(app.Env.FallbackGenres),
		app.Logger,
	)

	movieDBClient := repository_provider.NewMovieDBClient(repository_provider.MovieDBConfig{
		BaseURL: app.Env.MovieDBBaseURL,
		APIKey:  app.Env.MovieDBAPIKey,
		Redis:   app.Redis,
		Logger:  app.Logger,
	})
	aniListClient := repository_provider.NewAniListClient(repository_provider.AniListConfig{
		BaseURL: app.Env.AniListBaseURL,
		Redis:   app.Redis,
		Logger:  app.Logger,
	})

	service := usecase_catalog.NewCatalogUsecase(repo, movieDBClient, aniListClient, app.Logger, timeout)
	ctrl := controller_catalog.NewCatalogController(service)

	group.GET("/anime", ctrl.List)
	group.GET("/anime/search", ctrl.Search)
	group.GET("/anime/batch", ctrl.GetByIDs)
	group.GET("/anime/count", ctrl.Count)
	group.GET("/anime/values/:field", ctrl.UniqueValues)
	group.GET("/anime/:id", ctrl.GetByID)
}

func splitGenres(raw string) []string {
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}
