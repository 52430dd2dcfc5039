package main

import (
	"context"
	"log"

	"civicvoice-be/internal/bootstrap"
	"civicvoice-be/internal/config"
	"civicvoice-be/internal/server"
	"civicvoice-be/internal/tracer"
	"civicvoice-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting status email worker...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background worker error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
