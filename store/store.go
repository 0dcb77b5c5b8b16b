package store

import (
	"context"
	"errors"
	"time"

	"stockwatch/models"
)

// ErrNotFound reports that a symbol has no record in the stock catalog. It is
// an expected outcome, distinct from a storage fault, and maps to 404 at the
// HTTP boundary.
var ErrNotFound = errors.New("stock not found")

// StockStore is the catalog of known stocks. Both backends key records by
// symbol. SetPrice performs only the write; price validation happens before
// the store is touched.
type StockStore interface {
	// GetAll returns every stock ordered by symbol, without history.
	GetAll(ctx context.Context) ([]models.Stock, error)
	// GetBySymbol returns the full record including history, or ErrNotFound.
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	// Upsert creates the stock or replaces its descriptive fields, and
	// bulk-inserts any history rows carried on the record. Used by import.
	Upsert(ctx context.Context, stock *models.Stock) error
	// SetPrice overwrites the current price and appends one history entry
	// stamped at, committed as a single unit. Returns ErrNotFound for an
	// unknown symbol.
	SetPrice(ctx context.Context, symbol string, price float64, at time.Time) error
}

// WatchlistStore is the durable membership set. Add and Remove are both
// idempotent; duplicates never error and never create a second entry.
type WatchlistStore interface {
	// Add inserts the symbol. created is false when it was already a member.
	Add(ctx context.Context, symbol string) (created bool, err error)
	// Remove deletes the symbol; removing a non-member is a no-op.
	Remove(ctx context.Context, symbol string) error
	// Symbols lists the watched symbols ordered by symbol.
	Symbols(ctx context.Context) ([]string, error)
}
