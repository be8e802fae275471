package models

import "time"

// TradeRecord represents a single validated row of the market data file.
//
// Column order in the source file:
//  1. Time   ("2006-01-02 15:04:05")
//  2. Ticker
//  3. Price
//  4. Volume
//
// Producers guarantee Price > 0, Volume >= 0 and a non-empty Ticker before
// a record reaches the aggregator.
type TradeRecord struct {
	Time   time.Time
	Ticker string
	Price  float64
	Volume int64
}

// Date returns the wall-clock calendar day of the trade as midnight UTC,
// so records parsed in different locations group onto the same key.
func (r TradeRecord) Date() time.Time {
	y, m, d := r.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
