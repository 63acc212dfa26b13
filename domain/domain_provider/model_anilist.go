package domain_provider

// B源（图谱库）GraphQL响应结构，只声明合并会用到的字段

type AniListTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type AniListCoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
}

// AniListFuzzyDate 结构化日期，任一分量可缺失
type AniListFuzzyDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

type AniListStudioNode struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type AniListStudioEdge struct {
	IsMain bool              `json:"isMain"`
	Node   AniListStudioNode `json:"node"`
}

type AniListStudios struct {
	Edges []AniListStudioEdge `json:"edges"`
}

type AniListName struct {
	Full   string `json:"full"`
	Native string `json:"native"`
}

type AniListImage struct {
	Large string `json:"large"`
}

type AniListCharacterNode struct {
	ID    int          `json:"id"`
	Name  AniListName  `json:"name"`
	Image AniListImage `json:"image"`
}

type AniListVoiceActor struct {
	ID       int          `json:"id"`
	Name     AniListName  `json:"name"`
	Language string       `json:"languageV2"`
}

type AniListCharacterEdge struct {
	Role        string               `json:"role"`
	Node        AniListCharacterNode `json:"node"`
	VoiceActors []AniListVoiceActor  `json:"voiceActors"`
}

type AniListCharacters struct {
	Edges []AniListCharacterEdge `json:"edges"`
}

// AniListTrailer 预告片引用，只有站点可识别且id非空时才会被采纳
type AniListTrailer struct {
	ID   string `json:"id"`
	Site string `json:"site"`
}

type AniListMedia struct {
	ID           int               `json:"id"`
	Title        AniListTitle      `json:"title"`
	Description  string            `json:"description"`
	CoverImage   AniListCoverImage `json:"coverImage"`
	BannerImage  string            `json:"bannerImage"`
	Genres       []string          `json:"genres"`
	Status       string            `json:"status"` // RELEASING / FINISHED / NOT_YET_RELEASED / CANCELLED / HIATUS
	Format       string            `json:"format"` // TV / MOVIE / OVA / SPECIAL
	AverageScore *int              `json:"averageScore"` // 0-100
	Popularity   *int              `json:"popularity"`
	Season       string            `json:"season"`
	SeasonYear   *int              `json:"seasonYear"`
	StartDate    AniListFuzzyDate  `json:"startDate"`
	Studios      AniListStudios    `json:"studios"`
	Characters   AniListCharacters `json:"characters"`
	Trailer      *AniListTrailer   `json:"trailer"`
}

// PreferredTitle 罗马字优先，其次英文、原文
func (m *AniListMedia) PreferredTitle() string {
	if m.Title.Romaji != "" {
		return m.Title.Romaji
	}
	if m.Title.English != "" {
		return m.Title.English
	}
	return m.Title.Native
}
