package models

import "sort"

// WeightTable maps a ticker to its weight in the market index.
// Weights are not required to sum to 1.
type WeightTable map[string]float64

// Tickers returns the weighted tickers in ascending order.
func (w WeightTable) Tickers() []string {
	out := make([]string, 0, len(w))
	for t := range w {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Weight returns the weight of ticker, or 0 when it is not part of the table.
func (w WeightTable) Weight(ticker string) float64 {
	return w[ticker]
}

// Clone returns an independent copy of the table.
func (w WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
