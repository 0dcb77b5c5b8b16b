package stockController

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"stockwatch/middleware"
	"stockwatch/store"
)

// GetStocks returns the full stock catalog
func GetStocks(stocks store.StockStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := stocks.GetAll(c.Context())
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stocks!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Stocks list fetched!", list)
	}
}

// GetStockBySymbol returns a stock with its price history
func GetStockBySymbol(stocks store.StockStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbol := strings.ToUpper(c.Params("symbol"))

		stock, err := stocks.GetBySymbol(c.Context(), symbol)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stock not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stock!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Stock found!", stock)
	}
}

// UpdateStockPrice commits a validated price and appends a history entry.
// The validator has already rejected non-numeric, non-finite and <= 0 prices,
// so the only failures left are an unknown symbol or a storage fault.
func UpdateStockPrice(stocks store.StockStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		symbol := strings.ToUpper(c.Params("symbol"))
		price, ok := c.Locals("validatedPrice").(float64)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid price value!", nil)
		}

		if err := stocks.SetPrice(c.Context(), symbol, price, time.Now()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stock not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update price!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Stock price updated successfully!", fiber.Map{
			"symbol": symbol,
			"price":  price,
		})
	}
}
