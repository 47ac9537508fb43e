package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodinventory/internal/config"
	"foodinventory/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	foodItemHandler *handler.FoodItemHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
		ExposedHeaders: []string{echo.HeaderXRequestID},
	}).Handler))

	e.GET("/healthz", healthHandler.Live)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health/db", healthHandler.Database)

	items := api.Group("/food-items")
	items.GET("", foodItemHandler.ListItems)
	items.GET("/", foodItemHandler.ListItems)
	items.POST("", foodItemHandler.CreateItem)
	items.POST("/", foodItemHandler.CreateItem)
	items.GET("/:id", foodItemHandler.GetItem)
	items.PUT("/:id", foodItemHandler.UpdateItem)
	items.DELETE("/:id", foodItemHandler.DeleteItem)
}
