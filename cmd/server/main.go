package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodinventory/docs" // swagger docs
	"foodinventory/internal/cache"
	"foodinventory/internal/config"
	"foodinventory/internal/db"
	"foodinventory/internal/handler"
	"foodinventory/internal/repository"
	"foodinventory/internal/router"
	"foodinventory/internal/service"
)

// @title Food Inventory API
// @version 1.0
// @description CRUD API for food item inventory records.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	foodItemService := service.NewFoodItemService(repo, cacheClient, cfg.ItemCacheTTL)

	router.Register(
		e,
		cfg,
		handler.NewFoodItemHandler(foodItemService),
		handler.NewHealthHandler(foodItemService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// newRepository connects the configured storage backend and prepares the
// food_items table before the first request is served.
func newRepository(cfg *config.Config) (repository.FoodItemRepository, error) {
	if cfg.DBDriver == "memory" {
		log.Println("DB_DRIVER=memory: food items will not survive a restart")
		return repository.NewMemoryFoodItemRepository(), nil
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if cfg.ResetDB {
			log.Println("WARNING: RESET_DB=true detected, dropping food_items. All items are lost and ids restart from 1")
		}
		if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
			return nil, err
		}
	}

	return repository.NewFoodItemRepository(gormDB), nil
}
