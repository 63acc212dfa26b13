package usecase_catalog

import (
	"math"
	"strings"

	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/nsvip/anidex-backend/domain/domain_util"
)

// 外部元数据合并。规则统一为：外部源有值则覆盖，无值保留馆藏字段。
// 合并只发生在读路径的返回值上，不回写存储

const trailerSiteYouTube = "youtube"

// anilistStatusMap B源状态枚举到目录状态的映射
var anilistStatusMap = map[string]domain_catalog.AnimeStatus{
	"RELEASING":        domain_catalog.StatusAiring,
	"FINISHED":         domain_catalog.StatusCompleted,
	"NOT_YET_RELEASED": domain_catalog.StatusNotYetAired,
	"CANCELLED":        domain_catalog.StatusCancelled,
	"HIATUS":           domain_catalog.StatusHiatus,
}

// anilistFormatMap B源格式枚举到目录类型的映射
var anilistFormatMap = map[string]string{
	"TV":       "TV",
	"TV_SHORT": "TV",
	"MOVIE":    "Movie",
	"OVA":      "OVA",
	"ONA":      "OVA",
	"SPECIAL":  "Special",
}

// MergeMovieDB 把A源详情合并进目录条目。A源评分本身就是0-10，
// 保留一位小数后直接采用
func MergeMovieDB(anime *domain_catalog.Anime, details *domain_provider.MovieDBDetails) {
	if details == nil {
		return
	}
	if title := details.DisplayTitle(); title != "" {
		anime.Title = title
	}
	if details.Overview != "" {
		anime.Synopsis = details.Overview
	}
	if details.VoteAverage != nil {
		rating := roundRating(*details.VoteAverage)
		anime.Rating = &rating
	}
	if date := details.DisplayDate(); len(date) >= 4 {
		if year := parseYear(date); year > 0 {
			anime.Year = year
		}
	}
}

// MergeAniList 把B源媒体合并进目录条目。评分是0-100的整数，
// 归一到0-10并保留一位小数。可映射不了的内嵌实体直接丢弃
func MergeAniList(anime *domain_catalog.Anime, media *domain_provider.AniListMedia) {
	if media == nil {
		return
	}
	if title := media.PreferredTitle(); title != "" {
		anime.Title = title
	}
	if media.CoverImage.ExtraLarge != "" {
		anime.CoverURL = media.CoverImage.ExtraLarge
	} else if media.CoverImage.Large != "" {
		anime.CoverURL = media.CoverImage.Large
	}
	if media.BannerImage != "" {
		anime.BannerURL = media.BannerImage
	}
	if media.Description != "" {
		anime.Synopsis = stripMarkup(media.Description)
	}
	if len(media.Genres) > 0 {
		anime.Genres = append([]string(nil), media.Genres...)
	}
	if status, ok := anilistStatusMap[media.Status]; ok {
		anime.Status = status
	}
	if format, ok := anilistFormatMap[media.Format]; ok {
		anime.Type = format
	}
	if media.AverageScore != nil {
		rating := roundRating(float64(*media.AverageScore) / 10)
		anime.Rating = &rating
	}
	if media.Popularity != nil {
		popularity := *media.Popularity
		anime.Popularity = &popularity
	}
	if date := domain_util.FormatFuzzyDate(media.StartDate.Year, media.StartDate.Month, media.StartDate.Day); date != "" {
		anime.Year = *media.StartDate.Year
	}
	if studios := mapStudios(media.Studios.Edges); len(studios) > 0 {
		anime.Studios = studios
	}
	if cast := mapCast(media.Characters.Edges); len(cast) > 0 {
		anime.Cast = cast
	}
	if url := trailerURL(media.Trailer); url != "" {
		anime.TrailerURL = url
	}
}

// mapStudios 丢弃缺少id或名称的节点
func mapStudios(edges []domain_provider.AniListStudioEdge) []domain_catalog.Studio {
	studios := make([]domain_catalog.Studio, 0, len(edges))
	for _, edge := range edges {
		if edge.Node.ID == 0 || edge.Node.Name == "" {
			continue
		}
		studios = append(studios, domain_catalog.Studio{
			StudioID:   edge.Node.ID,
			StudioName: edge.Node.Name,
			IsMain:     edge.IsMain,
		})
	}
	return studios
}

// mapCast 丢弃缺少id或姓名的角色；声优取第一位
func mapCast(edges []domain_provider.AniListCharacterEdge) []domain_catalog.CastMember {
	cast := make([]domain_catalog.CastMember, 0, len(edges))
	for _, edge := range edges {
		if edge.Node.ID == 0 || edge.Node.Name.Full == "" {
			continue
		}
		member := domain_catalog.CastMember{
			CharacterID:    edge.Node.ID,
			CharacterName:  edge.Node.Name.Full,
			CharacterImage: edge.Node.Image.Large,
			Role:           edge.Role,
		}
		if len(edge.VoiceActors) > 0 {
			member.VoiceActorID = edge.VoiceActors[0].ID
			member.VoiceActorName = edge.VoiceActors[0].Name.Full
		}
		cast = append(cast, member)
	}
	return cast
}

// trailerURL 只认可识别的站点且id非空，否则返回空串
func trailerURL(trailer *domain_provider.AniListTrailer) string {
	if trailer == nil || trailer.ID == "" {
		return ""
	}
	if strings.ToLower(trailer.Site) != trailerSiteYouTube {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + trailer.ID
}

// roundRating 评分统一保留一位小数
func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}

func parseYear(date string) int {
	year := 0
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// stripMarkup B源简介带少量HTML换行标记，转成纯文本
func stripMarkup(text string) string {
	replacer := strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "<i>", "", "</i>", "", "<b>", "", "</b>", "")
	return strings.TrimSpace(replacer.Replace(text))
}
