package usecase_admin

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/domain/domain_util"
	"github.com/sirupsen/logrus"
)

// adminAnimeUsecase 管理端维护。写路径统一在这里派生slug与补剧集id，
// 存储层只接收已经规整过的文档
type adminAnimeUsecase struct {
	repo    domain_catalog.AnimeRepository
	logger  *logrus.Logger
	timeout time.Duration
}

func NewAdminAnimeUsecase(repo domain_catalog.AnimeRepository, logger *logrus.Logger, timeout time.Duration) domain_catalog.AdminAnimeService {
	if logger == nil {
		logger = logrus.New()
	}
	return &adminAnimeUsecase{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
	}
}

// Create 由标题派生slug作为文档ID，缺id的内嵌剧集补uuid
func (uc *adminAnimeUsecase) Create(ctx context.Context, anime *domain_catalog.Anime) (*domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if strings.TrimSpace(anime.Title) == "" {
		return nil, domain.NewConfigurationError("anime title is required")
	}

	slug := domain_util.Slugify(anime.Title)
	if slug == "" {
		return nil, domain.NewConfigurationError("anime title yields an empty slug")
	}
	anime.ID = slug
	assignEpisodeIDs(anime.Episodes)

	if err := uc.repo.Create(ctx, anime); err != nil {
		return nil, err
	}
	uc.logger.WithField("anime_id", anime.ID).Info("anime created")
	return anime, nil
}

func (uc *adminAnimeUsecase) Update(ctx context.Context, id string, update domain_catalog.UpdateAnimeInput) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if update.Episodes != nil {
		assignEpisodeIDs(*update.Episodes)
	}
	if err := uc.repo.Update(ctx, id, update); err != nil {
		return err
	}
	uc.logger.WithField("anime_id", id).Info("anime updated")
	return nil
}

func (uc *adminAnimeUsecase) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.WithField("anime_id", id).Info("anime deleted")
	return nil
}

func (uc *adminAnimeUsecase) GetByID(ctx context.Context, id string) (*domain_catalog.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.GetByID(ctx, id)
}

// assignEpisodeIDs 只补缺失的id，已有id保持不变
func assignEpisodeIDs(episodes []domain_catalog.Episode) {
	for i := range episodes {
		if episodes[i].ID == "" {
			episodes[i].ID = uuid.NewString()
		}
	}
}
