package stockController_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockwatch/config"
	"stockwatch/middleware"
	"stockwatch/models"
	stockRoutes "stockwatch/routers/stockRoutes"
	"stockwatch/store"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, store.StockStore) {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Stock{}, &models.HistoricalPrice{}, &models.WatchlistEntry{}))

	s := store.NewSQLStore(db)
	app := fiber.New()
	stockRoutes.SetupStockRoutes(app, s)
	return app, s
}

func seedStock(t *testing.T, s store.StockStore, symbol string, price float64) {
	t.Helper()
	require.NoError(t, s.Upsert(context.Background(), &models.Stock{
		Symbol:       symbol,
		Name:         symbol + " Ltd",
		Sector:       "IT",
		CurrentPrice: price,
	}))
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT(1, "Tester", "tester@example.com")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func TestGetStocks(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)
	seedStock(t, s, "AAPL", 180)

	resp, env := doJSON(t, app, "GET", "/api/stocks", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)

	var stocks []models.Stock
	require.NoError(t, json.Unmarshal(env.Data, &stocks))
	require.Len(t, stocks, 2)
	assert.Equal(t, "AAPL", stocks[0].Symbol)
}

func TestGetStockBySymbol(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)

	resp, env := doJSON(t, app, "GET", "/api/stocks/TCS", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stock models.Stock
	require.NoError(t, json.Unmarshal(env.Data, &stock))
	assert.Equal(t, "TCS", stock.Symbol)
	assert.Equal(t, 100.0, stock.CurrentPrice)
}

func TestGetStockBySymbolNotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, env := doJSON(t, app, "GET", "/api/stocks/UNKNOWN", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestUpdateStockPrice(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)
	token := authToken(t)

	resp, env := doJSON(t, app, "PUT", "/api/stocks/TCS/price", `{"price": 150}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)

	stock, err := s.GetBySymbol(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, 150.0, stock.CurrentPrice)
	require.Len(t, stock.HistoricalData, 1)
	assert.Equal(t, 150.0, stock.HistoricalData[0].Price)
}

func TestUpdateStockPriceAcceptsStringPrice(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)

	resp, _ := doJSON(t, app, "PUT", "/api/stocks/TCS/price", `{"price": "1,250.50"}`, authToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stock, err := s.GetBySymbol(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, 1250.50, stock.CurrentPrice)
}

func TestUpdateStockPriceRejectsInvalidPrice(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)
	token := authToken(t)

	for _, body := range []string{
		`{"price": -5}`,
		`{"price": 0}`,
		`{"price": "abc"}`,
		`{}`,
	} {
		resp, env := doJSON(t, app, "PUT", "/api/stocks/TCS/price", body, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
		assert.False(t, env.Status)
	}

	// rejected before any write: no price change, no audit entries
	stock, err := s.GetBySymbol(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, 100.0, stock.CurrentPrice)
	assert.Empty(t, stock.HistoricalData)
}

func TestUpdateStockPriceUnknownSymbol(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, "PUT", "/api/stocks/UNKNOWN/price", `{"price": 10}`, authToken(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStockPriceRequiresToken(t *testing.T) {
	app, s := setupApp(t)
	seedStock(t, s, "TCS", 100)

	resp, _ := doJSON(t, app, "PUT", "/api/stocks/TCS/price", `{"price": 150}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	stock, err := s.GetBySymbol(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, 100.0, stock.CurrentPrice)
}
