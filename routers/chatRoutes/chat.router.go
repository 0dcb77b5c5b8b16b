package chatRoutes

import (
	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	chatController "stockwatch/controllers/chat"
	"stockwatch/store"
)

// SetupChatRoutes sets up the stock analysis chat route
func SetupChatRoutes(app *fiber.App, stocks store.StockStore, client *genai.Client, model string) {
	app.Post("/api/chat", chatController.Chat(stocks, client, model))
}
