package models

import "time"

// TickerDailyStats holds the statistics of one ticker on one day.
//
// When HasData is false the ticker had no trades that day: Open, Close,
// High and Low carry no meaning and TradedValue is 0.
type TickerDailyStats struct {
	Ticker      string
	Trades      int
	HasData     bool
	Open        float64
	Close       float64
	High        float64
	Low         float64
	TradedValue float64
}

// IndexStatus tells how a day's index value was obtained.
type IndexStatus string

const (
	// IndexComputed means every weighted ticker traded and the index was calculated.
	IndexComputed IndexStatus = "computed"
	// IndexFallback means some weighted ticker was missing and the last known index was reused.
	IndexFallback IndexStatus = "fallback"
	// IndexUnavailable means some weighted ticker was missing and no index was known yet.
	IndexUnavailable IndexStatus = "unavailable"
)

// IndexOutcome is the index result for a single day. Value is only
// meaningful when Status is IndexComputed or IndexFallback.
type IndexOutcome struct {
	Status IndexStatus
	Value  float64
}

// HasValue reports whether the outcome carries an index value.
func (o IndexOutcome) HasValue() bool {
	return o.Status == IndexComputed || o.Status == IndexFallback
}

// DailyReport is everything computed for one calendar day.
// Stats are sorted by ticker and include tickers that did not trade that day.
type DailyReport struct {
	Date  time.Time
	Stats []TickerDailyStats
	Index IndexOutcome
}
