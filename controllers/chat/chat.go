package chatController

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	"stockwatch/middleware"
	"stockwatch/models"
	"stockwatch/store"
)

const promptTemplate = `As a stock market analysis assistant, analyze the following data and answer the query.

Context:
%s
User Query: %s

Please provide a detailed analysis considering:
1. Market trends
2. Sector performance
3. Individual stock metrics
4. Potential risks and opportunities
`

// Chat answers a user query with a Gemini-generated analysis grounded on the
// current stock catalog. An optional sector narrows the context.
func Chat(stocks store.StockStore, client *genai.Client, model string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Chat assistant is not configured!", nil)
		}

		reqData := new(struct {
			Message string `json:"message"`
			Sector  string `json:"sector"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if strings.TrimSpace(reqData.Message) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message is required!", nil)
		}

		list, err := stocks.GetAll(c.Context())
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stocks!", nil)
		}

		prompt := fmt.Sprintf(promptTemplate, buildContext(list, reqData.Sector), reqData.Message)

		resp, err := client.Models.GenerateContent(c.Context(), model, genai.Text(prompt), nil)
		if err != nil {
			log.Printf("Error generating stock analysis: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to generate analysis. Please try again.", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Analysis generated!", fiber.Map{
			"response": resp.Text(),
		})
	}
}

// buildContext renders the catalog as prompt context, one line per stock.
func buildContext(list []models.Stock, sector string) string {
	var b strings.Builder
	if sector != "" {
		fmt.Fprintf(&b, "Analyzing %s sector stocks:\n", sector)
	} else {
		b.WriteString("Current stock catalog:\n")
	}

	for _, s := range list {
		if sector != "" && !strings.EqualFold(s.Sector, sector) {
			continue
		}
		fmt.Fprintf(&b, "%s (%s, %s): price %.2f", s.Symbol, s.Name, s.Sector, s.CurrentPrice)
		if s.High52Week != nil && s.Low52Week != nil {
			fmt.Fprintf(&b, ", 52w high %.2f / low %.2f", *s.High52Week, *s.Low52Week)
		}
		if s.Volume != nil {
			fmt.Fprintf(&b, ", volume %d", *s.Volume)
		}
		b.WriteString("\n")
	}
	return b.String()
}
