package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"stockwatch/models"
)

// WatchlistCache is the client-local mirror of watchlist membership, giving
// the UI optimistic feedback without a round trip. It is loaded from its file
// at construction and written back on every mutation. The cache is advisory:
// it may diverge from the server set and no reconciliation is attempted
// beyond whatever this client last wrote.
type WatchlistCache struct {
	path string

	mu     sync.Mutex
	stocks []models.Stock
}

// NewWatchlistCache loads the cache file at path, treating a missing file as
// an empty watchlist.
func NewWatchlistCache(path string) (*WatchlistCache, error) {
	w := &WatchlistCache{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return w, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &w.stocks); err != nil {
		return nil, err
	}
	return w, nil
}

// Add inserts a stock unless one with the same symbol is already present.
// Returns true when the cache changed.
func (w *WatchlistCache) Add(stock models.Stock) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.stocks {
		if s.Symbol == stock.Symbol {
			return false, nil
		}
	}
	w.stocks = append(w.stocks, stock)
	return true, w.persist()
}

// Remove deletes the entry with the given symbol, if present.
func (w *WatchlistCache) Remove(symbol string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, s := range w.stocks {
		if s.Symbol == symbol {
			w.stocks = append(w.stocks[:i], w.stocks[i+1:]...)
			return true, w.persist()
		}
	}
	return false, nil
}

// IsWatched reports membership. A linear scan is fine at watchlist scale.
func (w *WatchlistCache) IsWatched(symbol string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.stocks {
		if s.Symbol == symbol {
			return true
		}
	}
	return false
}

// Stocks returns a copy of the cached entries.
func (w *WatchlistCache) Stocks() []models.Stock {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]models.Stock, len(w.stocks))
	copy(out, w.stocks)
	return out
}

func (w *WatchlistCache) persist() error {
	raw, err := json.Marshal(w.stocks)
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, raw, 0o644)
}
