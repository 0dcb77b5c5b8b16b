package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"google.golang.org/genai"

	"stockwatch/config"
	"stockwatch/database"
	authRoutes "stockwatch/routers/authRoutes"
	chatRoutes "stockwatch/routers/chatRoutes"
	stockRoutes "stockwatch/routers/stockRoutes"
	watchlistRoutes "stockwatch/routers/watchlistRoutes"
	"stockwatch/store"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	ctx := context.Background()

	// User accounts always live in the embedded database.
	db, err := database.ConnectSQLite(cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var stocks store.StockStore
	var watchlist store.WatchlistStore
	switch cfg.StoreBackend {
	case "redis":
		rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		doc := store.NewDocStore(rdb)
		stocks, watchlist = doc, doc
	case "sqlite":
		sql := store.NewSQLStore(db)
		stocks, watchlist = sql, sql
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (expected sqlite or redis)", cfg.StoreBackend)
	}

	var genaiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		genaiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Gemini client, chat disabled: %v", err)
			genaiClient = nil
		}
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	stockRoutes.SetupStockRoutes(app, stocks)
	watchlistRoutes.SetupWatchlistRoutes(app, stocks, watchlist)
	authRoutes.SetupAuthRoutes(app, db)
	chatRoutes.SetupChatRoutes(app, stocks, genaiClient, cfg.GeminiModel)

	log.Printf("Server is running on port %s (store backend: %s)", cfg.Port, cfg.StoreBackend)
	log.Fatal(app.Listen(":" + cfg.Port))
}
