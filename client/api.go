package client

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-resty/resty/v2"

	"stockwatch/models"
)

// APIError is a non-success response from the backend, carrying the HTTP
// status and the server's message so the UI can render something specific.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// API is the HTTP client for the stockwatch backend.
type API struct {
	http *resty.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
	}
}

// SetToken attaches the bearer token used by protected routes.
func (a *API) SetToken(token string) *API {
	a.http.SetAuthToken(token)
	return a
}

func decode(resp *resty.Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !env.Status {
		return &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// GetStocks fetches the full catalog
func (a *API) GetStocks(ctx context.Context) ([]models.Stock, error) {
	resp, err := a.http.R().SetContext(ctx).Get("/api/stocks")
	if err != nil {
		return nil, err
	}
	var stocks []models.Stock
	if err := decode(resp, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetStockDetails fetches one stock with history
func (a *API) GetStockDetails(ctx context.Context, symbol string) (*models.Stock, error) {
	resp, err := a.http.R().SetContext(ctx).Get("/api/stocks/" + symbol)
	if err != nil {
		return nil, err
	}
	var stock models.Stock
	if err := decode(resp, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

// UpdateStockPrice commits a new price for a symbol (requires a token)
func (a *API) UpdateStockPrice(ctx context.Context, symbol string, price float64) error {
	resp, err := a.http.R().SetContext(ctx).
		SetBody(map[string]float64{"price": price}).
		Put("/api/stocks/" + symbol + "/price")
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// GetWatchlist fetches the server-side watchlist resolved to stock records
func (a *API) GetWatchlist(ctx context.Context) ([]models.Stock, error) {
	resp, err := a.http.R().SetContext(ctx).Get("/api/watchlist")
	if err != nil {
		return nil, err
	}
	var stocks []models.Stock
	if err := decode(resp, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// AddToWatchlist adds a symbol to the server-side watchlist
func (a *API) AddToWatchlist(ctx context.Context, symbol string) error {
	resp, err := a.http.R().SetContext(ctx).
		SetBody(map[string]string{"symbol": symbol}).
		Post("/api/watchlist")
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// RemoveFromWatchlist removes a symbol from the server-side watchlist
func (a *API) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	resp, err := a.http.R().SetContext(ctx).Delete("/api/watchlist/" + symbol)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// SendChatMessage asks the analysis assistant a question
func (a *API) SendChatMessage(ctx context.Context, message string) (string, error) {
	resp, err := a.http.R().SetContext(ctx).
		SetBody(map[string]string{"message": message}).
		Post("/api/chat")
	if err != nil {
		return "", err
	}
	var data struct {
		Response string `json:"response"`
	}
	if err := decode(resp, &data); err != nil {
		return "", err
	}
	return data.Response, nil
}

// ExportWatchlistCSV writes the current server watchlist as CSV.
func (a *API) ExportWatchlistCSV(ctx context.Context, w io.Writer) error {
	stocks, err := a.GetWatchlist(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Symbol", "Name", "Price", "Sector"}); err != nil {
		return err
	}
	for _, s := range stocks {
		record := []string{
			s.Symbol,
			s.Name,
			strconv.FormatFloat(s.CurrentPrice, 'f', 2, 64),
			s.Sector,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
