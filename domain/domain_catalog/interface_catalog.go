package domain_catalog

import (
	"context"
)

// AnimeRepository 目录存储层接口
type AnimeRepository interface {
	List(ctx context.Context, filter QueryFilter) ([]Anime, error)
	Search(ctx context.Context, term string, count int) ([]Anime, error)
	GetByID(ctx context.Context, id string) (*Anime, error)
	GetByIDs(ctx context.Context, ids []string) ([]Anime, error)
	UniqueValues(ctx context.Context, field string) ([]string, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, anime *Anime) error
	Update(ctx context.Context, id string, update UpdateAnimeInput) error
	Delete(ctx context.Context, id string) error
}

// CatalogService 面向API层的目录门面
type CatalogService interface {
	List(ctx context.Context, filter QueryFilter) ([]Anime, error)
	Search(ctx context.Context, term string, count int) ([]Anime, error)
	// GetByID 单条查询并合并外部元数据；不存在返回(nil, nil)
	GetByID(ctx context.Context, id string) (*Anime, error)
	// GetByIDs 批量查询，保持入参顺序，不做外部合并
	GetByIDs(ctx context.Context, ids []string) ([]Anime, error)
	UniqueValues(ctx context.Context, field string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// AdminAnimeService 管理端维护接口。建档时由标题派生slug作为ID，
// 读路径返回馆藏原始数据，不做外部合并
type AdminAnimeService interface {
	Create(ctx context.Context, anime *Anime) (*Anime, error)
	Update(ctx context.Context, id string, update UpdateAnimeInput) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Anime, error)
}

// UpdateAnimeInput 管理端部分更新的显式字段集。
// nil表示不触碰该字段，由统一的归一化函数转成存储更新文档
type UpdateAnimeInput struct {
	Title      *string
	CoverURL   *string
	BannerURL  *string
	Year       *int
	Type       *string
	Genres     *[]string
	Status     *AnimeStatus
	Synopsis   *string
	Rating     *float64
	Popularity *int
	Featured   *bool
	TrailerURL *string
	Studios    *[]Studio
	Cast       *[]CastMember
	Episodes   *[]Episode

	ProviderAID *string
	ProviderBID *int
}
