package stockRoutes

import (
	"github.com/gofiber/fiber/v2"

	stockController "stockwatch/controllers/stock"
	"stockwatch/middleware"
	"stockwatch/store"
	stockValidator "stockwatch/validators/stock"
)

// SetupStockRoutes sets up the stock catalog routes
func SetupStockRoutes(app *fiber.App, stocks store.StockStore) {
	stockGroup := app.Group("/api/stocks")

	stockGroup.Get("/", stockController.GetStocks(stocks))
	stockGroup.Get("/:symbol", stockController.GetStockBySymbol(stocks))

	// Price mutation is the only protected stock route
	stockGroup.Put("/:symbol/price", stockValidator.UpdatePrice(), middleware.JWTMiddleware, stockController.UpdateStockPrice(stocks))
}
