package repository_catalog

import (
	"context"

	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FallbackExecutor 执行构建好的目录查询。
// 命中"复合索引缺失"时降级重试一次：收窄谓词、换安全排序、客户端侧补滤。
// 缺索引是结构性问题，重试修不好，降级上限严格为一次
type FallbackExecutor struct {
	db         mongo.Database
	collection string
	logger     *logrus.Logger
}

func NewFallbackExecutor(db mongo.Database, collection string, logger *logrus.Logger) *FallbackExecutor {
	return &FallbackExecutor{
		db:         db,
		collection: collection,
		logger:     logger,
	}
}

// Execute 先原样执行。仅缺索引走降级；其他存储错误立即分类上抛。
// 降级也失败时上抛的是最初的错误——降级失败不能掩盖原始诊断
func (e *FallbackExecutor) Execute(
	ctx context.Context,
	filter domain_catalog.QueryFilter,
	query *domain_catalog.CatalogQuery,
) ([]domain_catalog.Anime, error) {
	items, err := e.runQuery(ctx, query)
	if err == nil {
		return items, nil
	}

	if !domain.IsMissingIndexError(err) {
		return nil, domain.ClassifyStoreError(err, query.Context)
	}

	e.logger.WithFields(logrus.Fields{
		"collection": e.collection,
		"query":      query.Context,
	}).Warn("composite index missing, retrying with reduced query")

	fallback := buildFallbackQuery(filter)
	items, fallbackErr := e.runQuery(ctx, fallback)
	if fallbackErr != nil {
		e.logger.WithError(fallbackErr).Warn("fallback query failed as well")
		return nil, domain.ClassifyStoreError(err, query.Context)
	}

	// 降级查询谓词被收窄过，这里补齐剩余过滤
	filtered := make([]domain_catalog.Anime, 0, len(items))
	for i := range items {
		if matchesFilter(&items[i], filter) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered, nil
}

func (e *FallbackExecutor) runQuery(ctx context.Context, query *domain_catalog.CatalogQuery) ([]domain_catalog.Anime, error) {
	coll := e.db.Collection(e.collection)

	opts := options.Find().SetLimit(query.Limit)
	if len(query.Sort) > 0 {
		opts = opts.SetSort(query.Sort)
	}

	cursor, err := coll.Find(ctx, query.Filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain_catalog.Anime
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
