// Package aggregator groups trade records by day and ticker, computes the
// per-ticker daily statistics and drives the daily index computation.
package aggregator

import (
	"sort"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/index"
)

// DailyAggregator owns the running index state and the closing snapshot of
// the day being processed. It is not safe for concurrent use.
type DailyAggregator struct {
	calc    *index.Calculator
	state   index.RunningState
	closing map[string]float64
}

// Option configures a DailyAggregator.
type Option func(*DailyAggregator)

// WithLastKnownIndex seeds the running state, e.g. with a value persisted by a previous run.
func WithLastKnownIndex(v float64) Option {
	return func(a *DailyAggregator) {
		a.state = index.NewRunningState(v)
	}
}

// New creates an aggregator using calc for the daily index.
func New(calc *index.Calculator, opts ...Option) *DailyAggregator {
	a := &DailyAggregator{
		calc:    calc,
		closing: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProcessAll computes one DailyReport per distinct calendar day found in
// records, in ascending date order.
//
// Every ticker seen anywhere in records is reported on every day; tickers
// that did not trade on a day get a no-data entry. The running index state
// carries over between days and between calls.
func (a *DailyAggregator) ProcessAll(records []models.TradeRecord) []models.DailyReport {
	if len(records) == 0 {
		return nil
	}

	tickers := uniqueTickers(records)
	days, byDay := groupByDate(records)

	reports := make([]models.DailyReport, 0, len(days))
	for _, day := range days {
		reports = append(reports, a.processDay(day, byDay[day], tickers))
	}
	return reports
}

func (a *DailyAggregator) processDay(day time.Time, records []models.TradeRecord, tickers []string) models.DailyReport {
	clear(a.closing)

	byTicker := make(map[string][]models.TradeRecord, len(tickers))
	for _, r := range records {
		byTicker[r.Ticker] = append(byTicker[r.Ticker], r)
	}

	stats := make([]models.TickerDailyStats, 0, len(tickers))
	for _, t := range tickers {
		s := ComputeStats(t, byTicker[t])
		if s.HasData {
			a.closing[t] = s.Close
		}
		stats = append(stats, s)
	}

	return models.DailyReport{
		Date:  day,
		Stats: stats,
		Index: a.calc.ComputeDailyIndex(records, a.closing, &a.state),
	}
}

// LastKnownIndex returns the last computed index, if any.
func (a *DailyAggregator) LastKnownIndex() (float64, bool) {
	return a.state.LastKnown()
}

// DailyClosingPrices returns a copy of the closing prices of the most
// recently processed day, keyed by ticker.
//
// The snapshot is cleared when the next day starts, not when a day ends, so
// after ProcessAll returns it still holds the last day's closes (tickers that
// did not trade that day are absent). Before any day is processed, or after
// an empty ProcessAll on a fresh aggregator, it is empty.
func (a *DailyAggregator) DailyClosingPrices() map[string]float64 {
	out := make(map[string]float64, len(a.closing))
	for k, v := range a.closing {
		out[k] = v
	}
	return out
}

// ComputeStats derives a ticker's statistics from its trades of a single day
// in one pass. Open and close come from the earliest and latest timestamps;
// on equal timestamps the trade met first in trades wins.
func ComputeStats(ticker string, trades []models.TradeRecord) models.TickerDailyStats {
	s := models.TickerDailyStats{Ticker: ticker, Trades: len(trades)}
	if len(trades) == 0 {
		return s
	}

	first, last := trades[0], trades[0]
	s.HasData = true
	s.High, s.Low = first.Price, first.Price

	for _, r := range trades {
		if r.Time.Before(first.Time) {
			first = r
		}
		if r.Time.After(last.Time) {
			last = r
		}
		if r.Price > s.High {
			s.High = r.Price
		}
		if r.Price < s.Low {
			s.Low = r.Price
		}
		s.TradedValue += r.Price * float64(r.Volume)
	}

	s.Open, s.Close = first.Price, last.Price
	return s
}

func uniqueTickers(records []models.TradeRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Ticker]; ok {
			continue
		}
		seen[r.Ticker] = struct{}{}
		out = append(out, r.Ticker)
	}
	sort.Strings(out)
	return out
}

// groupByDate buckets records by calendar day, keeping input order inside each bucket.
func groupByDate(records []models.TradeRecord) ([]time.Time, map[time.Time][]models.TradeRecord) {
	byDay := make(map[time.Time][]models.TradeRecord)
	var days []time.Time
	for _, r := range records {
		d := r.Date()
		if _, ok := byDay[d]; !ok {
			days = append(days, d)
		}
		byDay[d] = append(byDay[d], r)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, byDay
}
