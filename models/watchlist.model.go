package models

import (
	"time"
)

// WatchlistEntry is a membership row referencing a stock by symbol. It never
// duplicates stock data; responses are resolved against the stock catalog.
type WatchlistEntry struct {
	Symbol  string    `gorm:"primaryKey;size:20" json:"symbol"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (WatchlistEntry) TableName() string { return "watchlist_entries" }
