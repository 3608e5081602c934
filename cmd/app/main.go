package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripforge/cmd/fx/config_fx"
	"tripforge/cmd/fx/db_fx"
	"tripforge/cmd/fx/gateway_fx"
	"tripforge/cmd/fx/itinerary_fx"
	"tripforge/cmd/fx/memcache_fx"
	"tripforge/cmd/fx/poi_fx"
	"tripforge/internal/api/controllers"
	"tripforge/internal/config"
	"tripforge/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		gateway_fx.Module,
		itinerary_fx.Module,
		poi_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	poiController *controllers.POIController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, poiController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	poiController *controllers.POIController) {

	api := r.Group("/api/v1")
	itineraryController.RegisterRoutes(api)
	poiController.RegisterRoutes(api)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at %s", cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
