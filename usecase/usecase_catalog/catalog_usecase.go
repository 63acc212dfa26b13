package usecase_catalog

import (
	"context"
	"sync"
	"time"

	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/sirupsen/logrus"
)

// catalogUsecase 目录门面。读路径在这里做外部元数据合并，
// 两个外部源并发取数，任一失败只降级不报错
type catalogUsecase struct {
	repo          domain_catalog.AnimeRepository
	movieDBClient domain_provider.MovieDBClient
	aniListClient domain_provider.AniListClient
	logger        *logrus.Logger
	timeout       time.Duration
}

func NewCatalogUsecase(
	repo domain_catalog.AnimeRepository,
	movieDBClient domain_provider.MovieDBClient,
	aniListClient domain_provider.AniListClient,
	logger *logrus.Logger,
	timeout time.Duration,
) domain_catalog.CatalogService {
	if logger == nil {
		logger = logrus.New()
	}
	return &catalogUsecase{
		repo:          repo,
		movieDBClient: movieDBClient,
		aniListClient: aniListClient,
		logger:        logger,
		timeout:       timeout,
	}
}

func (uc *catalogUsecase) List(ctx context.Context, filter domain_catalog.QueryFilter) ([]domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.List(ctx, filter)
}

func (uc *catalogUsecase) Search(ctx context.Context, term string, count int) ([]domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.Search(ctx, term, count)
}

// GetByID 取出馆藏条目后合并外部元数据。两个源相互独立，
// 并发请求，B源字段后合并覆盖A源的重叠字段
func (uc *catalogUsecase) GetByID(ctx context.Context, id string) (*domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	anime, err := uc.repo.GetByID(ctx, id)
	if err != nil || anime == nil {
		return anime, err
	}

	var (
		wg             sync.WaitGroup
		movieDBDetails *domain_provider.MovieDBDetails
		aniListMedia   *domain_provider.AniListMedia
	)

	if uc.movieDBClient != nil && anime.ProviderAID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			details, err := uc.movieDBClient.GetDetails(ctx, anime.ProviderAID, mediaKindFor(anime.Type))
			if err != nil {
				uc.logger.WithError(err).WithField("anime_id", anime.ID).Warn("moviedb enrichment failed")
				return
			}
			movieDBDetails = details
		}()
	}
	if uc.aniListClient != nil && anime.ProviderBID != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			media, err := uc.aniListClient.GetMedia(ctx, anime.ProviderBID)
			if err != nil {
				uc.logger.WithError(err).WithField("anime_id", anime.ID).Warn("anilist enrichment failed")
				return
			}
			aniListMedia = media
		}()
	}
	wg.Wait()

	enriched := *anime
	MergeMovieDB(&enriched, movieDBDetails)
	MergeAniList(&enriched, aniListMedia)
	return &enriched, nil
}

func (uc *catalogUsecase) GetByIDs(ctx context.Context, ids []string) ([]domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.GetByIDs(ctx, ids)
}

func (uc *catalogUsecase) UniqueValues(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.UniqueValues(ctx, field)
}

func (uc *catalogUsecase) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.Count(ctx)
}

// mediaKindFor 目录类型映射到A源的接口族
func mediaKindFor(animeType string) domain_provider.MediaKind {
	if animeType == "Movie" {
		return domain_provider.MediaKindMovie
	}
	return domain_provider.MediaKindSeries
}
