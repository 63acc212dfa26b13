package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

// Env 进程级配置。来源优先级：环境变量 > .env文件 > 默认值
type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`

	DBUri  string `mapstructure:"DB_URI"`
	DBName string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AccessTokenSecret      string `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiryHour  int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	RefreshTokenSecret     string `mapstructure:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiryHour int    `mapstructure:"REFRESH_TOKEN_EXPIRY_HOUR"`

	MovieDBAPIKey  string `mapstructure:"MOVIEDB_API_KEY"`
	MovieDBBaseURL string `mapstructure:"MOVIEDB_BASE_URL"`
	AniListBaseURL string `mapstructure:"ANILIST_BASE_URL"`

	BatchQueryLimit int `mapstructure:"BATCH_QUERY_LIMIT"`
	// 词表扫描失败时的兜底题材，逗号分隔
	FallbackGenres string `mapstructure:"FALLBACK_GENRES"`
}

func NewEnv() *Env {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// 没有默认值的键要显式绑定，环境变量才会进Unmarshal
	for _, key := range []string{
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET",
		"MOVIEDB_API_KEY", "MOVIEDB_BASE_URL", "ANILIST_BASE_URL",
	} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("CONTEXT_TIMEOUT", 10)
	v.SetDefault("DB_URI", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "anidex")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_HOUR", 2)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_HOUR", 168)
	v.SetDefault("BATCH_QUERY_LIMIT", 30)
	v.SetDefault("FALLBACK_GENRES", "Action,Adventure,Comedy,Drama,Fantasy,Romance,Sci-Fi,Slice of Life")

	if err := v.ReadInConfig(); err != nil {
		log.Println("no .env file found, using defaults and environment variables")
	}

	env := Env{}
	if err := v.Unmarshal(&env); err != nil {
		log.Fatalf("environment cannot be loaded: %v", err)
	}

	if env.AppEnv == "development" {
		log.Println("the app is running in development mode")
	}

	return &env
}
