package repository_catalog

import (
	"fmt"
	"strings"

	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/domain/domain_util"
	"go.mongodb.org/mongo-driver/bson"
)

// 合法排序字段集合，查询构建前校验
var validSortFields = map[string]bool{
	domain_catalog.SortByTitle:      true,
	domain_catalog.SortByYear:       true,
	domain_catalog.SortByRating:     true,
	domain_catalog.SortByPopularity: true,
	domain_catalog.SortByCreatedAt:  true,
	domain_catalog.SortByUpdatedAt:  true,
}

// 按过滤条件选择默认主排序。有过滤时优先展示新/热内容，绝不默认按标题
var defaultSortByFilter = []struct {
	present func(f domain_catalog.QueryFilter) bool
	sortBy  string
}{
	{func(f domain_catalog.QueryFilter) bool { return f.Genre != "" }, domain_catalog.SortByUpdatedAt},
	{func(f domain_catalog.QueryFilter) bool { return f.Type != "" }, domain_catalog.SortByPopularity},
	{func(f domain_catalog.QueryFilter) bool { return f.Status != "" }, domain_catalog.SortByUpdatedAt},
	{func(f domain_catalog.QueryFilter) bool { return f.Year != 0 }, domain_catalog.SortByPopularity},
	{func(f domain_catalog.QueryFilter) bool { return f.Featured != nil }, domain_catalog.SortByPopularity},
}

// BuildCatalogQuery 把声明式的过滤意图翻译成有序谓词+确定排序+有限上限。
// 同样的输入永远产出同样的查询，保证查询计划可预期、索引可命中
func BuildCatalogQuery(f domain_catalog.QueryFilter) (*domain_catalog.CatalogQuery, error) {
	if f.SortBy != "" && !validSortFields[f.SortBy] {
		return nil, domain.NewConfigurationError("unrecognized sort field %q", f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != domain_catalog.OrderAsc && f.SortOrder != domain_catalog.OrderDesc {
		return nil, domain.NewConfigurationError("unrecognized sort order %q", f.SortOrder)
	}

	// 检索模式优先，其余排序偏好全部忽略
	if strings.TrimSpace(f.Search) != "" {
		return buildSearchQuery(f), nil
	}

	query := &domain_catalog.CatalogQuery{
		Filter: buildEqualityPredicates(f),
		Limit:  capCount(f.Count),
	}

	sortBy := f.SortBy
	order := -1 // 默认降序
	if sortBy == "" {
		sortBy = pickDefaultSort(f)
	} else if f.SortOrder == domain_catalog.OrderAsc {
		order = 1
	} else if f.SortOrder == "" && sortBy == domain_catalog.SortByTitle {
		order = 1 // 显式按标题排序时默认升序
	}

	query.Sort = bson.D{{Key: sortBy, Value: order}}
	// 主排序不是标题时补标题升序，保证并列项次序可复现
	if sortBy != domain_catalog.SortByTitle {
		query.Sort = append(query.Sort, bson.E{Key: domain_catalog.SortByTitle, Value: 1})
	}

	query.SliceTo = int(query.Limit)
	query.Context = describeQuery(f, query.Sort)
	return query, nil
}

// buildSearchQuery 前缀范围模拟starts-with：
// 标题首字母大写归一后，上界补字典序哨兵。
// 存储只支持范围查询，真正的全文检索不在此层
func buildSearchQuery(f domain_catalog.QueryFilter) *domain_catalog.CatalogQuery {
	term := domain_util.CapitalizeFirst(strings.TrimSpace(f.Search))
	count := capCount(f.Count)

	return &domain_catalog.CatalogQuery{
		Filter: bson.D{
			{Key: "title", Value: bson.D{
				{Key: "$gte", Value: term},
				{Key: "$lte", Value: term + domain_catalog.MaxUnicodeSentinel},
			}},
		},
		Sort:       bson.D{{Key: domain_catalog.SortByTitle, Value: 1}},
		Limit:      count * domain_catalog.SearchOverfetchFactor, // 超量拉取，客户端侧精炼后再截断
		SearchTerm: strings.TrimSpace(f.Search),
		SliceTo:    int(count),
		Context:    fmt.Sprintf("search=%q sort=title asc", f.Search),
	}
}

// buildEqualityPredicates 等值谓词按固定顺序拼装，
// 顺序稳定才能让生成的查询对索引和计划缓存友好
func buildEqualityPredicates(f domain_catalog.QueryFilter) bson.D {
	predicates := bson.D{}
	if f.Genre != "" {
		// 数组字段的成员匹配
		predicates = append(predicates, bson.E{Key: "genres", Value: f.Genre})
	}
	if f.Type != "" {
		predicates = append(predicates, bson.E{Key: "type", Value: f.Type})
	}
	if f.Status != "" {
		predicates = append(predicates, bson.E{Key: "status", Value: f.Status})
	}
	if f.Year != 0 {
		predicates = append(predicates, bson.E{Key: "year", Value: f.Year})
	}
	if f.Featured != nil {
		predicates = append(predicates, bson.E{Key: "featured", Value: *f.Featured})
	}
	return predicates
}

func pickDefaultSort(f domain_catalog.QueryFilter) string {
	for _, rule := range defaultSortByFilter {
		if rule.present(f) {
			return rule.sortBy
		}
	}
	// 无过滤也无显式排序：按更新时间展示最新内容
	return domain_catalog.SortByUpdatedAt
}

// capCount 上限归一。哨兵"不限"换算成大而有限的上限，存储没有真正的全量拉取
func capCount(count int) int64 {
	switch {
	case count == domain_catalog.UnboundedCount:
		return domain_catalog.MaxListCount
	case count < 0:
		return domain_catalog.MaxListCount
	case count > domain_catalog.MaxListCount:
		return domain_catalog.MaxListCount
	default:
		return int64(count)
	}
}

// buildFallbackQuery 缺索引降级查询：只保留第一个等值谓词，
// 换用必有索引的安全排序，剩余谓词由调用方客户端侧补滤
func buildFallbackQuery(f domain_catalog.QueryFilter) *domain_catalog.CatalogQuery {
	predicates := buildEqualityPredicates(f)
	if len(predicates) > 1 {
		predicates = predicates[:1]
	}

	return &domain_catalog.CatalogQuery{
		Filter: predicates,
		Sort: bson.D{
			{Key: domain_catalog.SortByUpdatedAt, Value: -1},
			{Key: domain_catalog.SortByTitle, Value: 1},
		},
		Limit:   capCount(f.Count),
		SliceTo: int(capCount(f.Count)),
		Context: describeQuery(f, bson.D{{Key: domain_catalog.SortByUpdatedAt, Value: -1}}),
	}
}

// matchesFilter 客户端侧等值补滤，降级查询之后使用。
// 全量核对所有过滤条件，与服务端已过滤的谓词重复核对无害
func matchesFilter(a *domain_catalog.Anime, f domain_catalog.QueryFilter) bool {
	if f.Genre != "" {
		found := false
		for _, g := range a.Genres {
			if g == f.Genre {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Status != "" && string(a.Status) != f.Status {
		return false
	}
	if f.Year != 0 && a.Year != f.Year {
		return false
	}
	if f.Featured != nil {
		if a.Featured == nil || *a.Featured != *f.Featured {
			return false
		}
	}
	return true
}

// describeQuery 过滤/排序组合的人读描述，随缺索引诊断原样输出
func describeQuery(f domain_catalog.QueryFilter, sort bson.D) string {
	var parts []string
	if f.Genre != "" {
		parts = append(parts, "genre="+f.Genre)
	}
	if f.Type != "" {
		parts = append(parts, "type="+f.Type)
	}
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if f.Year != 0 {
		parts = append(parts, fmt.Sprintf("year=%d", f.Year))
	}
	if f.Featured != nil {
		parts = append(parts, fmt.Sprintf("featured=%t", *f.Featured))
	}
	if len(parts) == 0 {
		parts = append(parts, "no-filter")
	}

	var sortParts []string
	for _, s := range sort {
		dir := "asc"
		if v, ok := s.Value.(int); ok && v < 0 {
			dir = "desc"
		}
		sortParts = append(sortParts, fmt.Sprintf("%s %s", s.Key, dir))
	}
	return strings.Join(parts, " ") + " sort=" + strings.Join(sortParts, ", ")
}
