package dto

import "github.com/guttosm/marketpulse/internal/domain/models"

// TickerStatsResponse is the JSON form of one ticker's daily statistics.
// Price fields are null when the ticker did not trade that day.
type TickerStatsResponse struct {
	Ticker      string   `json:"ticker" example:"ABC"`
	Trades      int      `json:"trades" example:"3"`
	Open        *float64 `json:"open" example:"155.0"`
	Close       *float64 `json:"close" example:"160.0"`
	High        *float64 `json:"high" example:"161.5"`
	Low         *float64 `json:"low" example:"154.0"`
	TradedValue float64  `json:"traded_value" example:"310000.0"`
}

// IndexResponse is the JSON form of a day's index outcome.
type IndexResponse struct {
	Status string   `json:"status" example:"computed"` // computed | fallback | unavailable
	Value  *float64 `json:"value" example:"1799.5"`
}

// DailyReportResponse represents one element of GET /api/v1/reports.
type DailyReportResponse struct {
	Date    string                `json:"date" example:"2025-02-15"`
	Tickers []TickerStatsResponse `json:"tickers"`
	Index   IndexResponse         `json:"index"`
}

// LastIndexResponse is returned by GET /api/v1/index/last.
type LastIndexResponse struct {
	Value float64 `json:"value" example:"1799.5"`
}

// NewDailyReportResponse maps a domain report onto its API contract.
func NewDailyReportResponse(r models.DailyReport) DailyReportResponse {
	out := DailyReportResponse{
		Date:    r.Date.Format("2006-01-02"),
		Tickers: make([]TickerStatsResponse, 0, len(r.Stats)),
		Index:   IndexResponse{Status: string(r.Index.Status)},
	}
	if r.Index.HasValue() {
		out.Index.Value = ptr(r.Index.Value)
	}
	for _, s := range r.Stats {
		ts := TickerStatsResponse{Ticker: s.Ticker, Trades: s.Trades, TradedValue: s.TradedValue}
		if s.HasData {
			ts.Open, ts.Close = ptr(s.Open), ptr(s.Close)
			ts.High, ts.Low = ptr(s.High), ptr(s.Low)
		}
		out.Tickers = append(out.Tickers, ts)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
