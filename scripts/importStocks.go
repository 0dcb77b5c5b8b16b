package main

import (
	"context"
	"encoding/csv"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stockwatch/config"
	"stockwatch/database"
	"stockwatch/models"
	"stockwatch/store"
)

// Imports historical price CSVs laid out as <dir>/<sector>/<symbol>.csv into
// the configured store backend. Rows are expected most-recent first with the
// columns: Date, OPEN, HIGH, LOW, close, VOLUME, 52W H, 52W L.
func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	ctx := context.Background()

	stocksDir := "stocks"
	if len(os.Args) > 1 {
		stocksDir = os.Args[1]
	}

	var stocks store.StockStore
	switch cfg.StoreBackend {
	case "redis":
		rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		stocks = store.NewDocStore(rdb)
	default:
		db, err := database.ConnectSQLite(cfg.DBName)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		stocks = store.NewSQLStore(db)
	}

	sectors, err := os.ReadDir(stocksDir)
	if err != nil {
		log.Fatalf("Failed to read stocks directory %s: %v", stocksDir, err)
	}

	imported := 0
	skipped := 0

	for _, sectorDir := range sectors {
		if !sectorDir.IsDir() {
			continue
		}
		sector := strings.ReplaceAll(sectorDir.Name(), "%20", " ")
		log.Printf("Loading stocks from sector: %s", sector)

		files, err := os.ReadDir(filepath.Join(stocksDir, sectorDir.Name()))
		if err != nil {
			log.Fatalf("Failed to read sector directory %s: %v", sector, err)
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".csv") {
				continue
			}
			symbol := symbolFromFilename(file.Name())

			stock, err := parseStockCSV(filepath.Join(stocksDir, sectorDir.Name(), file.Name()), symbol, sector)
			if err != nil {
				log.Printf("Skipping %s: %v", file.Name(), err)
				skipped++
				continue
			}

			if err := stocks.Upsert(ctx, stock); err != nil {
				log.Printf("Error importing %s: %v", symbol, err)
				skipped++
				continue
			}
			log.Printf("Loaded %s from %s (%d history rows)", symbol, sector, len(stock.HistoricalData))
			imported++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Imported: %d", imported)
	log.Printf("Skipped: %d", skipped)
}

// symbolFromFilename extracts the trading symbol from names like
// "NSE-EQ-TCS.csv" or plain "TCS.csv".
func symbolFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".csv")
	parts := strings.Split(base, "-")
	if len(parts) >= 3 {
		return strings.ToUpper(parts[2])
	}
	return strings.ToUpper(base)
}

func parseStockCSV(path, symbol, sector string) (*models.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errNoData
	}

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}

	// First data row is the most recent observation
	latest := records[1]
	currentPrice := parseNumber(getField(latest, headerIndex, "close"))
	if currentPrice == nil || *currentPrice <= 0 {
		return nil, errNoData
	}

	stock := &models.Stock{
		Symbol:       symbol,
		Name:         symbol,
		Sector:       sector,
		CurrentPrice: *currentPrice,
		High52Week:   parseNumber(getField(latest, headerIndex, "52W H")),
		Low52Week:    parseNumber(getField(latest, headerIndex, "52W L")),
		LastUpdated:  time.Now(),
	}
	if v := parseNumber(getField(latest, headerIndex, "VOLUME")); v != nil {
		volume := int64(*v)
		stock.Volume = &volume
	}

	// History goes oldest-first; the file is newest-first
	for i := len(records) - 1; i >= 1; i-- {
		row := records[i]
		date, err := parseDate(getField(row, headerIndex, "Date"))
		if err != nil {
			continue
		}
		price := parseNumber(getField(row, headerIndex, "close"))
		if price == nil {
			continue
		}
		stock.HistoricalData = append(stock.HistoricalData, models.HistoricalPrice{
			Date:  date,
			Price: *price,
		})
	}

	return stock, nil
}

var errNoData = errors.New("no usable price data")

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseNumber converts a string to a float, stripping thousands separators.
// Returns nil for empty or malformed values.
func parseNumber(s string) *float64 {
	if s == "" {
		return nil
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &val
}

var dateLayouts = []string{"02-Jan-2006", "2006-01-02", "02-01-2006"}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
