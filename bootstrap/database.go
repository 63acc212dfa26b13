package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/nsvip/anidex-backend/mongo"
)

func NewMongoDatabase(env *Env) mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.DBUri)
	if err != nil {
		log.Fatalf("mongo client init failed: %v", err)
	}

	if err := client.Connect(ctx); err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}

	if err := client.Ping(ctx); err != nil {
		log.Fatalf("mongo ping failed: %v", err)
	}

	return client
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.Background()); err != nil {
		log.Printf("mongo disconnect failed: %v", err)
		return
	}
	log.Println("connection to mongodb closed")
}
