package domain_provider

// A源（影视关系库）返回的结构。字段按其REST响应命名，只保留合并会用到的部分

type MovieDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDBDetails 电影/剧集详情。电影与剧集共用一个结构，
// 剧集特有字段（seasons）电影响应中为空
type MovieDBDetails struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Name         string         `json:"name"` // 剧集接口用name而非title
	Overview     string         `json:"overview"`
	PosterPath   string         `json:"poster_path"`
	BackdropPath string         `json:"backdrop_path"`
	ReleaseDate  string         `json:"release_date"`
	FirstAirDate string         `json:"first_air_date"`
	Genres       []MovieDBGenre `json:"genres"`
	VoteAverage  *float64       `json:"vote_average"` // 0-10
	Status       string         `json:"status"`
	Seasons      []MovieDBSeason `json:"seasons"`
}

type MovieDBSeason struct {
	SeasonNumber int              `json:"season_number"`
	Name         string           `json:"name"`
	EpisodeCount int              `json:"episode_count"`
	Episodes     []MovieDBEpisode `json:"episodes"`
}

type MovieDBEpisode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	StillPath     string `json:"still_path"`
	AirDate       string `json:"air_date"`
	Runtime       int    `json:"runtime"`
}

// DisplayTitle 电影接口与剧集接口的标题字段不同，这里抹平
func (d *MovieDBDetails) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// DisplayDate 同上，发行日期字段抹平
func (d *MovieDBDetails) DisplayDate() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}
