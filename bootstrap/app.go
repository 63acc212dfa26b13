package bootstrap

import (
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Application 进程依赖容器，main里组装，路由层取用
type Application struct {
	Env    *Env
	Mongo  mongo.Client
	Redis  *redis.Client
	Logger *logrus.Logger
}

func App() Application {
	app := Application{}
	app.Env = NewEnv()
	app.Logger = NewLogger(app.Env)
	app.Mongo = NewMongoDatabase(app.Env)
	app.Redis = NewRedisClient(app.Env)
	return app
}

func (app *Application) CloseDBConnection() {
	CloseMongoDBConnection(app.Mongo)
}

// NewLogger JSON结构化日志，生产环境收敛到Info级
func NewLogger(env *Env) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if env.AppEnv == "development" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
