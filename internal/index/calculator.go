// Package index computes the daily weighted market index.
package index

import "github.com/guttosm/marketpulse/internal/domain/models"

// RunningState carries the last successfully computed index across days.
// The zero value holds no index.
type RunningState struct {
	last  float64
	valid bool
}

// NewRunningState returns a state already holding v as the last known index.
func NewRunningState(v float64) RunningState {
	return RunningState{last: v, valid: true}
}

// LastKnown returns the last computed index and whether one exists.
func (s *RunningState) LastKnown() (float64, bool) {
	return s.last, s.valid
}

func (s *RunningState) set(v float64) {
	s.last = v
	s.valid = true
}

// Calculator computes the index from a static weight table.
// It holds no mutable state and may be shared.
type Calculator struct {
	weights models.WeightTable
	tickers []string
}

// NewCalculator builds a Calculator. The table is copied.
func NewCalculator(weights models.WeightTable) *Calculator {
	w := weights.Clone()
	return &Calculator{weights: w, tickers: w.Tickers()}
}

// Weights returns a copy of the weight table in use.
func (c *Calculator) Weights() models.WeightTable {
	return c.weights.Clone()
}

// ComputeDailyIndex returns the day's index outcome.
//
// Behavior:
//   - If every weighted ticker appears in dayRecords, the index is the sum of
//     weight × closing price over the weighted tickers found in closing, and
//     state is updated with it.
//   - Otherwise the last known index from state is returned as a fallback
//     (or IndexUnavailable when there is none) and state is left untouched.
//
// Tickers trading that day without a weight do not affect the result.
func (c *Calculator) ComputeDailyIndex(dayRecords []models.TradeRecord, closing map[string]float64, state *RunningState) models.IndexOutcome {
	present := make(map[string]struct{}, len(dayRecords))
	for _, r := range dayRecords {
		present[r.Ticker] = struct{}{}
	}

	for _, t := range c.tickers {
		if _, ok := present[t]; !ok {
			if v, ok := state.LastKnown(); ok {
				return models.IndexOutcome{Status: models.IndexFallback, Value: v}
			}
			return models.IndexOutcome{Status: models.IndexUnavailable}
		}
	}

	// sorted iteration keeps the float sum reproducible
	var value float64
	for _, t := range c.tickers {
		if price, ok := closing[t]; ok {
			value += c.weights[t] * price
		}
	}
	state.set(value)
	return models.IndexOutcome{Status: models.IndexComputed, Value: value}
}
