package watchlistController

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockwatch/middleware"
	"stockwatch/models"
	"stockwatch/store"
)

// GetWatchlist lists watched symbols resolved to full stock records. The
// watchlist never stores stock data, only references.
func GetWatchlist(stocks store.StockStore, watchlist store.WatchlistStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbols, err := watchlist.Symbols(c.Context())
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch watchlist!", nil)
		}

		resolved := make([]models.Stock, 0, len(symbols))
		for _, symbol := range symbols {
			stock, err := stocks.GetBySymbol(c.Context(), symbol)
			if errors.Is(err, store.ErrNotFound) {
				// membership added before add-time validation existed
				continue
			}
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch watchlist!", nil)
			}
			stock.HistoricalData = nil
			resolved = append(resolved, *stock)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Watchlist fetched!", resolved)
	}
}

// AddToWatchlist inserts a symbol into the watchlist. Unknown symbols are
// rejected so the watchlist can never hold a dangling reference; re-adding a
// member succeeds without creating a duplicate.
func AddToWatchlist(stocks store.StockStore, watchlist store.WatchlistStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbol, ok := c.Locals("validatedSymbol").(string)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Symbol is required!", nil)
		}

		if _, err := stocks.GetBySymbol(c.Context(), symbol); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stock not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update watchlist!", nil)
		}

		created, err := watchlist.Add(c.Context(), symbol)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update watchlist!", nil)
		}

		if !created {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already in watchlist!", fiber.Map{"symbol": symbol})
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Added to watchlist!", fiber.Map{"symbol": symbol})
	}
}

// RemoveFromWatchlist deletes a symbol from the watchlist. Removing a
// non-member is a successful no-op.
func RemoveFromWatchlist(watchlist store.WatchlistStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbol := strings.ToUpper(c.Params("symbol"))

		if err := watchlist.Remove(c.Context(), symbol); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update watchlist!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Removed from watchlist!", fiber.Map{"symbol": symbol})
	}
}
