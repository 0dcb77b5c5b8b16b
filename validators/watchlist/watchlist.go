package watchlistValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockwatch/middleware"
)

// Add validates the add-to-watchlist request body
func Add() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Symbol string `json:"symbol"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		symbol := strings.ToUpper(strings.TrimSpace(reqData.Symbol))
		if symbol == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Symbol is required!", nil)
		}

		c.Locals("validatedSymbol", symbol)
		return c.Next()
	}
}
