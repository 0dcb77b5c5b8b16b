package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"stockwatch/models"
)

const (
	stockKeyPrefix = "stock:"
	symbolsKey     = "stocks"
	watchlistKey   = "watchlist"

	// retries for optimistic WATCH transactions before giving up
	maxTxRetries = 10
)

// Compile-time checks that DocStore implements both store contracts
var (
	_ StockStore     = (*DocStore)(nil)
	_ WatchlistStore = (*DocStore)(nil)
)

// DocStore is the document backend: one JSON document per symbol under
// stock:<symbol>, with history embedded in the document, plus a set of known
// symbols for enumeration and a set for watchlist membership.
type DocStore struct {
	rdb *redis.Client
}

func NewDocStore(rdb *redis.Client) *DocStore {
	return &DocStore{rdb: rdb}
}

func stockKey(symbol string) string { return stockKeyPrefix + symbol }

func (d *DocStore) GetAll(ctx context.Context) ([]models.Stock, error) {
	symbols, err := d.rdb.SMembers(ctx, symbolsKey).Result()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []models.Stock{}, nil
	}
	sort.Strings(symbols)

	keys := make([]string, len(symbols))
	for i, sym := range symbols {
		keys[i] = stockKey(sym)
	}
	results, err := d.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	stocks := make([]models.Stock, 0, len(results))
	for _, val := range results {
		raw, ok := val.(string)
		if !ok || raw == "" {
			continue
		}
		var stock models.Stock
		if err := json.Unmarshal([]byte(raw), &stock); err != nil {
			return nil, err
		}
		// listing parity with the relational backend: no history on GetAll
		stock.HistoricalData = nil
		stocks = append(stocks, stock)
	}
	return stocks, nil
}

func (d *DocStore) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	raw, err := d.rdb.Get(ctx, stockKey(symbol)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var stock models.Stock
	if err := json.Unmarshal([]byte(raw), &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (d *DocStore) Upsert(ctx context.Context, stock *models.Stock) error {
	key := stockKey(stock.Symbol)
	txn := func(tx *redis.Tx) error {
		next := *stock
		if next.LastUpdated.IsZero() {
			next.LastUpdated = time.Now()
		}

		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			// existing document keeps its history; new rows are appended
			var existing models.Stock
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return err
			}
			next.HistoricalData = append(existing.HistoricalData, stock.HistoricalData...)
		}

		doc, err := json.Marshal(&next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.SAdd(ctx, symbolsKey, stock.Symbol)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := d.rdb.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func (d *DocStore) SetPrice(ctx context.Context, symbol string, price float64, at time.Time) error {
	key := stockKey(symbol)
	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var stock models.Stock
		if err := json.Unmarshal([]byte(raw), &stock); err != nil {
			return err
		}

		stock.CurrentPrice = price
		stock.LastUpdated = at
		stock.HistoricalData = append(stock.HistoricalData, models.HistoricalPrice{
			Date:  at,
			Price: price,
		})

		doc, err := json.Marshal(&stock)
		if err != nil {
			return err
		}
		// the whole document is replaced in one write; WATCH keeps a
		// concurrent update from dropping a history entry
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := d.rdb.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func (d *DocStore) Add(ctx context.Context, symbol string) (bool, error) {
	added, err := d.rdb.SAdd(ctx, watchlistKey, symbol).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}

func (d *DocStore) Remove(ctx context.Context, symbol string) error {
	return d.rdb.SRem(ctx, watchlistKey, symbol).Err()
}

func (d *DocStore) Symbols(ctx context.Context) ([]string, error) {
	symbols, err := d.rdb.SMembers(ctx, watchlistKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(symbols)
	return symbols, nil
}
