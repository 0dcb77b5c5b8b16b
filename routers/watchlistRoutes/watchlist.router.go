package watchlistRoutes

import (
	"github.com/gofiber/fiber/v2"

	watchlistController "stockwatch/controllers/watchlist"
	"stockwatch/store"
	watchlistValidator "stockwatch/validators/watchlist"
)

// SetupWatchlistRoutes sets up the watchlist membership routes
func SetupWatchlistRoutes(app *fiber.App, stocks store.StockStore, watchlist store.WatchlistStore) {
	watchlistGroup := app.Group("/api/watchlist")

	watchlistGroup.Get("/", watchlistController.GetWatchlist(stocks, watchlist))
	watchlistGroup.Post("/", watchlistValidator.Add(), watchlistController.AddToWatchlist(stocks, watchlist))
	watchlistGroup.Delete("/:symbol", watchlistController.RemoveFromWatchlist(watchlist))
}
