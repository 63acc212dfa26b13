package repository_catalog

import (
	"context"

	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultBatchQueryLimit 存储单次$in批量查询的条数上限
const DefaultBatchQueryLimit = 30

// BatchResolver 任意长度的ID列表按上限分块批量拉取，
// 结果按调用方入参顺序归并。单块失败只记日志不中断，
// 一个坏块不应清空其余块的结果
type BatchResolver struct {
	db         mongo.Database
	collection string
	batchLimit int
	logger     *logrus.Logger
}

func NewBatchResolver(db mongo.Database, collection string, batchLimit int, logger *logrus.Logger) *BatchResolver {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchQueryLimit
	}
	return &BatchResolver{
		db:         db,
		collection: collection,
		batchLimit: batchLimit,
		logger:     logger,
	}
}

// ResolveMany 保持入参顺序返回；未命中的ID静默跳过，不视为错误
func (r *BatchResolver) ResolveMany(ctx context.Context, ids []string) ([]domain_catalog.Anime, error) {
	if len(ids) == 0 {
		return []domain_catalog.Anime{}, nil
	}

	resolved := make(map[string]domain_catalog.Anime, len(ids))
	for _, chunk := range chunkUniqueIDs(ids, r.batchLimit) {
		items, err := r.fetchChunk(ctx, chunk)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"collection": r.collection,
				"chunk_size": len(chunk),
			}).WithError(err).Warn("batch chunk failed, continuing with remaining chunks")
			continue
		}
		for _, item := range items {
			resolved[item.ID] = item
		}
	}

	// 存储返回顺序任意，最终顺序由入参列表驱动
	out := make([]domain_catalog.Anime, 0, len(ids))
	for _, id := range ids {
		if item, ok := resolved[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *BatchResolver) fetchChunk(ctx context.Context, chunk []string) ([]domain_catalog.Anime, error) {
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: chunk}}}})
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

// chunkUniqueIDs 去重后分块。重复ID只查一次，归并阶段按原始列表展开
func chunkUniqueIDs(ids []string, limit int) [][]string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	var chunks [][]string
	for start := 0; start < len(unique); start += limit {
		end := start + limit
		if end > len(unique) {
			end = len(unique)
		}
		chunks = append(chunks, unique[start:end])
	}
	return chunks
}
