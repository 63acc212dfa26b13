package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient 外部元数据缓存。连不上只告警不中断，
// 提供方客户端对nil缓存做了容错
func NewRedisClient(env *Env) *redis.Client {
	if env.RedisAddr == "" {
		log.Println("redis not configured, provider caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, provider caching disabled: %v", err)
		return nil
	}

	return client
}
