package models

import (
	"time"
)

// Stock is the catalog record for a tradable symbol. The symbol is the
// primary key in both store backends; the relational schema and the redis
// document share this struct.
type Stock struct {
	Symbol       string    `gorm:"primaryKey;size:20" json:"symbol"`
	Name         string    `gorm:"not null" json:"name"`
	Sector       string    `json:"sector"`
	CurrentPrice float64   `gorm:"not null" json:"currentPrice"`
	High52Week   *float64  `json:"high52Week,omitempty"`
	Low52Week    *float64  `json:"low52Week,omitempty"`
	Volume       *int64    `json:"volume,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`

	// HistoricalData is append-only; SetPrice adds one entry per call.
	HistoricalData []HistoricalPrice `gorm:"foreignKey:StockSymbol;references:Symbol;constraint:OnDelete:CASCADE" json:"historicalData,omitempty"`
}

// HistoricalPrice is a single past price observation.
type HistoricalPrice struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	StockSymbol string    `gorm:"index;size:20;not null" json:"-"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Price       float64   `gorm:"not null" json:"price"`
}

func (Stock) TableName() string           { return "stocks" }
func (HistoricalPrice) TableName() string { return "historical_prices" }
