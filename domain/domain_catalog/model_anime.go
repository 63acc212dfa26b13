package domain_catalog

import (
	"time"
)

// AnimeStatus 番剧播出状态
type AnimeStatus string

const (
	StatusOngoing     AnimeStatus = "Ongoing"
	StatusCompleted   AnimeStatus = "Completed"
	StatusUpcoming    AnimeStatus = "Upcoming"
	StatusUnknown     AnimeStatus = "Unknown"
	StatusAiring      AnimeStatus = "Airing"
	StatusNotYetAired AnimeStatus = "NotYetAired"
	StatusCancelled   AnimeStatus = "Cancelled"
	StatusHiatus      AnimeStatus = "Hiatus"
)

// Anime 目录主实体。ID为建档时由标题派生的slug，之后不再变化
type Anime struct {
	ID       string `bson:"_id" json:"id"`
	Title    string `bson:"title" json:"title"`
	CoverURL string `bson:"cover_url" json:"cover_url,omitempty"`
	BannerURL string `bson:"banner_url" json:"banner_url,omitempty"`

	Year     int         `bson:"year" json:"year,omitempty"`
	Type     string      `bson:"type" json:"type,omitempty"` // TV / Movie / OVA / Special
	Genres   []string    `bson:"genres" json:"genres,omitempty"`
	Status   AnimeStatus `bson:"status" json:"status,omitempty"`
	Synopsis string      `bson:"synopsis" json:"synopsis,omitempty"`

	Rating     *float64 `bson:"rating,omitempty" json:"rating,omitempty"` // 0-10
	Popularity *int     `bson:"popularity,omitempty" json:"popularity,omitempty"`
	Featured   *bool    `bson:"featured,omitempty" json:"featured,omitempty"`

	TrailerURL string `bson:"trailer_url,omitempty" json:"trailer_url,omitempty"`

	Studios  []Studio      `bson:"studios,omitempty" json:"studios,omitempty"`
	Cast     []CastMember  `bson:"cast,omitempty" json:"cast,omitempty"`
	Episodes []Episode     `bson:"episodes,omitempty" json:"episodes,omitempty"`

	// 外部元数据源标识：A源（影视库）为字符串ID，B源（图谱库）为整数ID
	ProviderAID string `bson:"provider_a_id,omitempty" json:"provider_a_id,omitempty"`
	ProviderBID int    `bson:"provider_b_id,omitempty" json:"provider_b_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Episode 剧集，内嵌在Anime中，不单独成集合。
// id在父文档内唯一，缺失时由写入路径补uuid
type Episode struct {
	ID        string     `bson:"id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	Number    int        `bson:"number" json:"number"`
	Season    int        `bson:"season" json:"season"`
	VideoURL  string     `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Thumbnail string     `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Duration  int        `bson:"duration,omitempty" json:"duration,omitempty"` // 分钟
	AirDate   string     `bson:"air_date,omitempty" json:"air_date,omitempty"` // YYYY-MM-DD
	Overview  string     `bson:"overview,omitempty" json:"overview,omitempty"`
}

type Studio struct {
	StudioID   int    `bson:"studio_id" json:"studio_id"`
	StudioName string `bson:"studio_name" json:"studio_name"`
	IsMain     bool   `bson:"is_main" json:"is_main"`
}

type CastMember struct {
	CharacterID    int    `bson:"character_id" json:"character_id"`
	CharacterName  string `bson:"character_name" json:"character_name"`
	CharacterImage string `bson:"character_image,omitempty" json:"character_image,omitempty"`
	Role           string `bson:"role,omitempty" json:"role,omitempty"`
	VoiceActorID   int    `bson:"voice_actor_id,omitempty" json:"voice_actor_id,omitempty"`
	VoiceActorName string `bson:"voice_actor_name,omitempty" json:"voice_actor_name,omitempty"`
}
