package domain_provider

import "context"

// MediaKind A源区分电影与剧集两类接口
type MediaKind string

const (
	MediaKindMovie  MediaKind = "movie"
	MediaKindSeries MediaKind = "series"
)

// MovieDBClient A源客户端
type MovieDBClient interface {
	GetDetails(ctx context.Context, externalID string, kind MediaKind) (*MovieDBDetails, error)
}

// AniListClient B源客户端
type AniListClient interface {
	GetMedia(ctx context.Context, externalID int) (*AniListMedia, error)
}
