package domain_catalog

import "go.mongodb.org/mongo-driver/bson"

// 排序字段枚举。传入不在此列的字段视为配置错误，不会发起存储调用
const (
	SortByTitle      = "title"
	SortByYear       = "year"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
	SortByCreatedAt  = "created_at"
	SortByUpdatedAt  = "updated_at"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	// DefaultListCount 列表查询默认返回条数
	DefaultListCount = 20
	// UnboundedCount 调用方表达"不限条数"的哨兵值
	UnboundedCount = -1
	// MaxListCount 哨兵值换算出的有限上限，存储不支持真正的全量拉取
	MaxListCount = 1000
	// SearchOverfetchFactor 前缀检索多取倍数，给客户端侧二次过滤留余量
	SearchOverfetchFactor = 2
	// MaxUnicodeSentinel 前缀范围查询的字典序上界
	MaxUnicodeSentinel = ""
)

// QueryFilter 一次目录查询的全部筛选意图，不落库。
// Search非空时进入检索模式，其余排序偏好被忽略
type QueryFilter struct {
	Genre    string
	Type     string
	Status   string
	Year     int
	Featured *bool

	SortBy    string
	SortOrder string

	Search string

	Count int
}

// CatalogQuery 构建完成的存储查询：谓词有序、排序确定、上限有限。
// PostFilter非空时表示降级执行后还需客户端侧补滤
type CatalogQuery struct {
	Filter bson.D
	Sort   bson.D
	Limit  int64

	// Search模式下的原始搜索词，用于客户端侧子串精炼
	SearchTerm string
	// 最终截断条数（检索模式会超量拉取再截断）
	SliceTo int

	// 描述本次过滤/排序组合，缺索引诊断时原样输出
	Context string
}
