package stockValidator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockwatch/middleware"
)

var errInvalidPrice = errors.New("invalid price value")

// ParsePrice accepts the external price representation from a request body.
// Clients send either a JSON number or a string; imported data may carry
// thousands separators ("1,234.50"). The result must be a finite number
// strictly greater than zero.
func ParsePrice(raw any) (float64, error) {
	var price float64
	switch v := raw.(type) {
	case float64:
		price = v
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		if err != nil {
			return 0, errInvalidPrice
		}
		price = parsed
	default:
		return 0, errInvalidPrice
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errInvalidPrice
	}
	if price <= 0 {
		return 0, errInvalidPrice
	}
	return price, nil
}

// UpdatePrice validates the price update request body
func UpdatePrice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Price any `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		price, err := ParsePrice(reqData.Price)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid price value!", nil)
		}

		c.Locals("validatedPrice", price)
		return c.Next()
	}
}
