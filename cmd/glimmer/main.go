package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/glimmerpics/glimmer/app/controllers"
	"github.com/glimmerpics/glimmer/app/gallery"
	"github.com/glimmerpics/glimmer/app/gateway/docstore"
	"github.com/glimmerpics/glimmer/app/gateway/media"
	"github.com/glimmerpics/glimmer/internal/pkg/cache"
	"github.com/glimmerpics/glimmer/internal/pkg/env"
	"github.com/glimmerpics/glimmer/internal/pkg/geocode"
	"github.com/glimmerpics/glimmer/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	cache.SetupCache()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := docstore.Connect(ctx)
	if err != nil {
		log.Fatalf("document store: %v", err)
	}

	engine := gallery.NewEngine(
		store,
		media.NewGateway(media.LoadConfig()),
		gallery.ExifExtractor{},
		geocode.NewClient(),
	)
	if err := engine.Load(ctx); err != nil {
		// Serve anyway; the engine records the error and a later load can
		// recover once the store is reachable.
		log.Printf("initial gallery load failed: %v", err)
	}
	controllers.Setup(engine)

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 104857600, // 100 MiB
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
