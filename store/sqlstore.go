package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockwatch/models"
)

// Compile-time checks that SQLStore implements both store contracts
var (
	_ StockStore     = (*SQLStore)(nil)
	_ WatchlistStore = (*SQLStore)(nil)
)

// SQLStore is the embedded relational backend on GORM/sqlite. Stocks and
// watchlist entries share the symbol key; history lives in its own table.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetAll(ctx context.Context) ([]models.Stock, error) {
	var stocks []models.Stock
	if err := s.db.WithContext(ctx).Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (s *SQLStore) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.WithContext(ctx).
		Preload("HistoricalData", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Where("symbol = ?", symbol).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

func (s *SQLStore) Upsert(ctx context.Context, stock *models.Stock) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *stock
		row.HistoricalData = nil
		if row.LastUpdated.IsZero() {
			row.LastUpdated = time.Now()
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "sector", "current_price", "high52_week", "low52_week", "volume", "last_updated",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		if len(stock.HistoricalData) == 0 {
			return nil
		}
		entries := make([]models.HistoricalPrice, len(stock.HistoricalData))
		for i, h := range stock.HistoricalData {
			entries[i] = models.HistoricalPrice{
				StockSymbol: stock.Symbol,
				Date:        h.Date,
				Price:       h.Price,
			}
		}
		return tx.CreateInBatches(entries, 200).Error
	})
}

func (s *SQLStore) SetPrice(ctx context.Context, symbol string, price float64, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Stock{}).
			Where("symbol = ?", symbol).
			Updates(map[string]any{
				"current_price": price,
				"last_updated":  at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&models.HistoricalPrice{
			StockSymbol: symbol,
			Date:        at,
			Price:       price,
		}).Error
	})
}

func (s *SQLStore) Add(ctx context.Context, symbol string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.WatchlistEntry{Symbol: symbol})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *SQLStore) Remove(ctx context.Context, symbol string) error {
	return s.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Delete(&models.WatchlistEntry{}).Error
}

func (s *SQLStore) Symbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&models.WatchlistEntry{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
