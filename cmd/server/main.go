package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/zavier/pulsetempo/internal/server"
	"github.com/zavier/pulsetempo/internal/server/config"
)

func main() {
	// optional in production, handy for local runs
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
