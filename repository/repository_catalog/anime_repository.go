package repository_catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// uniqueValueSampleSize 去重取值扫描的样本上限，避免全集合扫描
const uniqueValueSampleSize = 500

// 可做去重取值的字段及其在文档中的形态
var uniqueValueFields = map[string]bool{
	"genres": true,
	"type":   true,
	"status": true,
}

type animeRepository struct {
	db         mongo.Database
	collection string
	executor   *FallbackExecutor
	resolver   *BatchResolver
	logger     *logrus.Logger

	// 静态兜底词表：扫描结果并入词表，前端的分类面板永不为空
	fallbackGenres []string
}

func NewAnimeRepository(
	db mongo.Database,
	collection string,
	batchLimit int,
	fallbackGenres []string,
	logger *logrus.Logger,
) domain_catalog.AnimeRepository {
	return &animeRepository{
		db:             db,
		collection:     collection,
		executor:       NewFallbackExecutor(db, collection, logger),
		resolver:       NewBatchResolver(db, collection, batchLimit, logger),
		logger:         logger,
		fallbackGenres: fallbackGenres,
	}
}

func (r *animeRepository) List(ctx context.Context, filter domain_catalog.QueryFilter) ([]domain_catalog.Anime, error) {
	// 条数为0直接短路，不碰存储
	if filter.Count == 0 {
		return []domain_catalog.Anime{}, nil
	}

	query, err := BuildCatalogQuery(filter)
	if err != nil {
		return nil, err
	}

	items, err := r.executor.Execute(ctx, filter, query)
	if err != nil {
		return nil, err
	}

	if query.SearchTerm != "" {
		items = refineSearchResults(items, query.SearchTerm)
	}
	if query.SliceTo > 0 && len(items) > query.SliceTo {
		items = items[:query.SliceTo]
	}
	return items, nil
}

func (r *animeRepository) Search(ctx context.Context, term string, count int) ([]domain_catalog.Anime, error) {
	return r.List(ctx, domain_catalog.QueryFilter{Search: term, Count: count})
}

func (r *animeRepository) GetByID(ctx context.Context, id string) (*domain_catalog.Anime, error) {
	coll := r.db.Collection(r.collection)

	var anime domain_catalog.Anime
	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&anime)
	if err != nil {
		classified := domain.ClassifyStoreError(err, "id="+id)
		// 单条未命中是正常的空结果，不是错误
		if classified.Kind == domain.ErrKindNotFound {
			return nil, nil
		}
		return nil, classified
	}
	return &anime, nil
}

func (r *animeRepository) GetByIDs(ctx context.Context, ids []string) ([]domain_catalog.Anime, error) {
	return r.resolver.ResolveMany(ctx, ids)
}

// UniqueValues 有界采样扫描收集取值，再并入静态兜底词表去重排序
func (r *animeRepository) UniqueValues(ctx context.Context, field string) ([]string, error) {
	if !uniqueValueFields[field] {
		return nil, domain.NewConfigurationError("field %q does not support unique-value aggregation", field)
	}

	coll := r.db.Collection(r.collection)
	opts := options.Find().
		SetLimit(uniqueValueSampleSize).
		SetProjection(bson.D{{Key: field, Value: 1}})

	seen := make(map[string]bool)
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		// 扫描失败降级为纯兜底词表，分类面板不能空
		r.logger.WithError(err).Warn("unique-value scan failed, serving fallback vocabulary only")
	} else {
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var doc bson.M
			if err := cursor.Decode(&doc); err != nil {
				continue
			}
			collectFieldValues(doc[field], seen)
		}
	}

	if field == "genres" {
		for _, g := range r.fallbackGenres {
			seen[g] = true
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		if v != "" {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}

func (r *animeRepository) Count(ctx context.Context) (int64, error) {
	coll := r.db.Collection(r.collection)
	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, domain.ClassifyStoreError(err, "count all")
	}
	return n, nil
}

func (r *animeRepository) Create(ctx context.Context, anime *domain_catalog.Anime) error {
	if anime.ID == "" {
		return domain.NewConfigurationError("anime id (slug) must be derived before create")
	}

	now := time.Now().UTC()
	anime.CreatedAt = now
	anime.UpdatedAt = now

	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, anime); err != nil {
		if driver.IsDuplicateKeyError(err) {
			return fmt.Errorf("anime with slug %q already exists: %w", anime.ID, err)
		}
		return domain.ClassifyStoreError(err, "create id="+anime.ID)
	}
	return nil
}

func (r *animeRepository) Update(ctx context.Context, id string, update domain_catalog.UpdateAnimeInput) error {
	doc := toUpdateDocument(update)
	if len(doc) == 0 {
		return domain.NewConfigurationError("update contains no fields")
	}
	doc["updated_at"] = time.Now().UTC()

	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.M{"$set": doc})
	if err != nil {
		return domain.ClassifyStoreError(err, "update id="+id)
	}
	if result.MatchedCount == 0 {
		return &domain.StoreError{Kind: domain.ErrKindNotFound, Message: "anime not found: " + id}
	}
	return nil
}

func (r *animeRepository) Delete(ctx context.Context, id string) error {
	coll := r.db.Collection(r.collection)
	deleted, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return domain.ClassifyStoreError(err, "delete id="+id)
	}
	if deleted == 0 {
		return &domain.StoreError{Kind: domain.ErrKindNotFound, Message: "anime not found: " + id}
	}
	return nil
}

// toUpdateDocument 部分更新归一化的唯一入口。
// 指针为nil的字段不出现在更新文档里，避免调用方各自拼接隐式置空
func toUpdateDocument(in domain_catalog.UpdateAnimeInput) bson.M {
	doc := bson.M{}
	if in.Title != nil {
		doc["title"] = *in.Title
	}
	if in.CoverURL != nil {
		doc["cover_url"] = *in.CoverURL
	}
	if in.BannerURL != nil {
		doc["banner_url"] = *in.BannerURL
	}
	if in.Year != nil {
		doc["year"] = *in.Year
	}
	if in.Type != nil {
		doc["type"] = *in.Type
	}
	if in.Genres != nil {
		doc["genres"] = *in.Genres
	}
	if in.Status != nil {
		doc["status"] = *in.Status
	}
	if in.Synopsis != nil {
		doc["synopsis"] = *in.Synopsis
	}
	if in.Rating != nil {
		doc["rating"] = *in.Rating
	}
	if in.Popularity != nil {
		doc["popularity"] = *in.Popularity
	}
	if in.Featured != nil {
		doc["featured"] = *in.Featured
	}
	if in.TrailerURL != nil {
		doc["trailer_url"] = *in.TrailerURL
	}
	if in.Studios != nil {
		doc["studios"] = *in.Studios
	}
	if in.Cast != nil {
		doc["cast"] = *in.Cast
	}
	if in.Episodes != nil {
		doc["episodes"] = *in.Episodes
	}
	if in.ProviderAID != nil {
		doc["provider_a_id"] = *in.ProviderAID
	}
	if in.ProviderBID != nil {
		doc["provider_b_id"] = *in.ProviderBID
	}
	return doc
}

// refineSearchResults 前缀范围命中后的客户端侧子串精炼。
// 相对真正的全文检索会有漏检，这是既有行为，保持不动
func refineSearchResults(items []domain_catalog.Anime, term string) []domain_catalog.Anime {
	lowered := strings.ToLower(term)
	out := make([]domain_catalog.Anime, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), lowered) {
			out = append(out, item)
		}
	}
	return out
}

func collectFieldValues(v interface{}, into map[string]bool) {
	switch val := v.(type) {
	case string:
		into[val] = true
	case bson.A:
		for _, item := range val {
			if s, ok := item.(string); ok {
				into[s] = true
			}
		}
	case []string:
		for _, s := range val {
			into[s] = true
		}
	}
}
