package repository_catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"go.mongodb.org/mongo-driver/bson"
)

func boolPtr(b bool) *bool { return &b }

// 同样的过滤输入必须产出完全一致的谓词与排序序列
func TestBuildCatalogQuery_Deterministic(t *testing.T) {
	filter := domain_catalog.QueryFilter{
		Genre:  "Action",
		Type:   "TV",
		Status: "Ongoing",
		Year:   2021,
		Count:  20,
	}

	first, err := BuildCatalogQuery(filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildCatalogQuery(filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical filters produced different queries:\n%+v\n%+v", first, second)
	}
}

// 检索词压过一切过滤与排序偏好，固定按标题升序
func TestBuildCatalogQuery_SearchOverridesFilterSort(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{
		Search: "naruto",
		Genre:  "Action",
		SortBy: domain_catalog.SortByPopularity,
		Count:  20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSort := bson.D{{Key: "title", Value: 1}}
	if !reflect.DeepEqual(query.Sort, wantSort) {
		t.Errorf("sort = %v, want %v", query.Sort, wantSort)
	}
	for _, p := range query.Filter {
		if p.Key == "genres" {
			t.Errorf("genre predicate leaked into search query: %v", query.Filter)
		}
	}
}

// 规格场景：search term 首字母大写 + 字典序哨兵上界，超量拉取
func TestBuildCatalogQuery_SearchPrefixRange(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{Search: "naruto", Count: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFilter := bson.D{
		{Key: "title", Value: bson.D{
			{Key: "$gte", Value: "Naruto"},
			{Key: "$lte", Value: "Naruto"},
		}},
	}
	if !reflect.DeepEqual(query.Filter, wantFilter) {
		t.Errorf("filter = %v, want %v", query.Filter, wantFilter)
	}
	if query.Limit != 40 {
		t.Errorf("limit = %d, want over-fetch 40", query.Limit)
	}
	if query.SliceTo != 20 {
		t.Errorf("sliceTo = %d, want 20", query.SliceTo)
	}
}

// 规格场景：genre过滤无显式排序 → genres等值谓词 + updated_at desc, title asc
func TestBuildCatalogQuery_GenreDefaultSort(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{Genre: "Action", Count: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFilter := bson.D{{Key: "genres", Value: "Action"}}
	if !reflect.DeepEqual(query.Filter, wantFilter) {
		t.Errorf("filter = %v, want %v", query.Filter, wantFilter)
	}

	wantSort := bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "title", Value: 1},
	}
	if !reflect.DeepEqual(query.Sort, wantSort) {
		t.Errorf("sort = %v, want %v", query.Sort, wantSort)
	}
	if query.Limit != 20 {
		t.Errorf("limit = %d, want 20", query.Limit)
	}
}

// 无过滤也无显式排序时默认按更新时间，绝不默认按标题
func TestBuildCatalogQuery_NoFilterDefaultSort(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{Count: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Sort[0].Key != domain_catalog.SortByUpdatedAt || query.Sort[0].Value != -1 {
		t.Errorf("primary sort = %v, want updated_at desc", query.Sort[0])
	}
}

// 谓词顺序固定：genre → type → status → year → featured
func TestBuildCatalogQuery_StablePredicateOrder(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{
		Featured: boolPtr(true),
		Year:     2020,
		Status:   "Completed",
		Type:     "Movie",
		Genre:    "Drama",
		Count:    10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []string{"genres", "type", "status", "year", "featured"}
	if len(query.Filter) != len(wantKeys) {
		t.Fatalf("predicate count = %d, want %d", len(query.Filter), len(wantKeys))
	}
	for i, key := range wantKeys {
		if query.Filter[i].Key != key {
			t.Errorf("predicate[%d] = %s, want %s", i, query.Filter[i].Key, key)
		}
	}
}

func TestBuildCatalogQuery_InvalidSortFieldFailsFast(t *testing.T) {
	_, err := BuildCatalogQuery(domain_catalog.QueryFilter{SortBy: "episode_count", Count: 20})
	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestBuildCatalogQuery_InvalidSortOrderFailsFast(t *testing.T) {
	_, err := BuildCatalogQuery(domain_catalog.QueryFilter{SortBy: domain_catalog.SortByYear, SortOrder: "sideways", Count: 20})
	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

// 哨兵"不限条数"翻译成大而有限的上限
func TestBuildCatalogQuery_UnboundedSentinel(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{Count: domain_catalog.UnboundedCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Limit != domain_catalog.MaxListCount {
		t.Errorf("limit = %d, want %d", query.Limit, domain_catalog.MaxListCount)
	}
}

// 显式按标题排序时无需再补标题次排序
func TestBuildCatalogQuery_TitleSortHasNoSecondary(t *testing.T) {
	query, err := BuildCatalogQuery(domain_catalog.QueryFilter{SortBy: domain_catalog.SortByTitle, Count: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(query.Sort) != 1 {
		t.Errorf("sort = %v, want single title key", query.Sort)
	}
	if query.Sort[0].Value != 1 {
		t.Errorf("title sort default order should be asc, got %v", query.Sort[0].Value)
	}
}

// 降级查询只保留第一个等值谓词，排序换成安全组合
func TestBuildFallbackQuery(t *testing.T) {
	fallback := buildFallbackQuery(domain_catalog.QueryFilter{
		Genre:  "Action",
		Status: "Ongoing",
		Year:   2020,
		Count:  20,
	})

	if len(fallback.Filter) != 1 || fallback.Filter[0].Key != "genres" {
		t.Errorf("fallback filter = %v, want single genres predicate", fallback.Filter)
	}
	wantSort := bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "title", Value: 1},
	}
	if !reflect.DeepEqual(fallback.Sort, wantSort) {
		t.Errorf("fallback sort = %v, want %v", fallback.Sort, wantSort)
	}
}

func TestMatchesFilter(t *testing.T) {
	anime := domain_catalog.Anime{
		Title:    "Vinland Saga",
		Genres:   []string{"Action", "Historical"},
		Type:     "TV",
		Status:   domain_catalog.StatusCompleted,
		Year:     2019,
		Featured: boolPtr(true),
	}

	cases := []struct {
		name   string
		filter domain_catalog.QueryFilter
		want   bool
	}{
		{"all match", domain_catalog.QueryFilter{Genre: "Action", Type: "TV", Status: "Completed", Year: 2019, Featured: boolPtr(true)}, true},
		{"genre mismatch", domain_catalog.QueryFilter{Genre: "Romance"}, false},
		{"year mismatch", domain_catalog.QueryFilter{Year: 2021}, false},
		{"featured mismatch", domain_catalog.QueryFilter{Featured: boolPtr(false)}, false},
		{"empty filter", domain_catalog.QueryFilter{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := matchesFilter(&anime, c.filter); got != c.want {
				t.Errorf("matchesFilter = %v, want %v", got, c.want)
			}
		})
	}
}
