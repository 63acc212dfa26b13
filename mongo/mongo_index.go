package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/nsvip/anidex-backend/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes 建立目录查询依赖的复合索引。
// 每个筛选维度对应一条"谓词+默认排序+标题次序"的复合索引，
// 缺了其中任何一条，对应查询会走降级路径
func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	animeCollection := db.Collection(domain.CollectionCatalogAnime)

	// 检索模式：标题前缀范围扫描
	createIndex(ctx, animeCollection, bson.D{{Key: "title", Value: 1}}, "title")

	// 无筛选默认排序
	createIndex(ctx, animeCollection, bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "title", Value: 1}}, "updated_title_compound")

	// 各筛选维度的复合索引
	createIndex(ctx, animeCollection, bson.D{
		{Key: "genres", Value: 1},
		{Key: "updated_at", Value: -1},
		{Key: "title", Value: 1}}, "genres_updated_title_compound")
	createIndex(ctx, animeCollection, bson.D{
		{Key: "type", Value: 1},
		{Key: "popularity", Value: -1},
		{Key: "title", Value: 1}}, "type_popularity_title_compound")
	createIndex(ctx, animeCollection, bson.D{
		{Key: "status", Value: 1},
		{Key: "updated_at", Value: -1},
		{Key: "title", Value: 1}}, "status_updated_title_compound")
	createIndex(ctx, animeCollection, bson.D{
		{Key: "year", Value: 1},
		{Key: "popularity", Value: -1},
		{Key: "title", Value: 1}}, "year_popularity_title_compound")
	createIndex(ctx, animeCollection, bson.D{
		{Key: "featured", Value: 1},
		{Key: "popularity", Value: -1},
		{Key: "title", Value: 1}}, "featured_popularity_title_compound")

	// 显式排序字段的单列索引
	createIndex(ctx, animeCollection, bson.D{{Key: "year", Value: 1}}, "year")
	createIndex(ctx, animeCollection, bson.D{{Key: "rating", Value: -1}}, "rating")
	createIndex(ctx, animeCollection, bson.D{{Key: "popularity", Value: -1}}, "popularity")
	createIndex(ctx, animeCollection, bson.D{{Key: "created_at", Value: -1}}, "created_at")

	userCollection := db.Collection(domain.CollectionUser)
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique")
}

func createIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("create index '%s' failed: %v\n", name, err)
	} else {
		fmt.Printf("index '%s' ready\n", name)
	}
}

func createUniqueIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("create unique index '%s' failed: %v\n", name, err)
	} else {
		fmt.Printf("index '%s' ready\n", name)
	}
}

// DropAllIndexes 运维入口，重建索引前清场用
func DropAllIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collections := []string{
		domain.CollectionCatalogAnime,
		domain.CollectionUser,
	}

	for _, collName := range collections {
		collection := db.Collection(collName)
		if _, err := collection.Indexes().DropAll(ctx); err != nil {
			fmt.Printf("drop indexes on '%s' failed: %v\n", collName, err)
		} else {
			fmt.Printf("indexes on '%s' dropped\n", collName)
		}
	}
}
