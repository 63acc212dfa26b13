package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/route"
	"github.com/nsvip/anidex-backend/bootstrap"
	"github.com/nsvip/anidex-backend/mongo"
)

func main() {
	app := bootstrap.App()
	defer app.CloseDBConnection()

	env := app.Env
	db := app.Mongo.Database(env.DBName)

	mongo.CreateIndexes(db)

	timeout := time.Duration(env.ContextTimeout) * time.Second

	if env.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	route.Setup(&app, timeout, db, engine)

	if err := engine.Run(env.ServerAddress); err != nil {
		app.Logger.WithError(err).Fatal("server exited")
	}
}
