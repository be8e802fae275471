// Package report renders daily reports for humans.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// Sink consumes computed daily reports.
type Sink interface {
	Write(r models.DailyReport) error
}

// TextSink writes reports in the plain console layout:
//
//	Date 2025-02-15
//	Ticker: ABC
//	Open price: 155.0
//	Close price: 155.0
//	Highest price: 155.0
//	Lowest price: 155.0
//	Traded volume: 310000.0
//	Daily Index: 1799.50
//
// Prices of tickers that did not trade print as N/A.
type TextSink struct {
	w io.Writer
}

// NewTextSink returns a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Write renders one day.
func (s *TextSink) Write(r models.DailyReport) error {
	bw := bufio.NewWriter(s.w)

	fmt.Fprintf(bw, "Date %s\n", r.Date.Format("2006-01-02"))
	for _, st := range r.Stats {
		fmt.Fprintf(bw, "Ticker: %s\n", st.Ticker)
		writePrice(bw, "Open price", st.Open, st.HasData)
		writePrice(bw, "Close price", st.Close, st.HasData)
		writePrice(bw, "Highest price", st.High, st.HasData)
		writePrice(bw, "Lowest price", st.Low, st.HasData)
		fmt.Fprintf(bw, "Traded volume: %s\n", fixed(st.TradedValue, 1))
	}

	switch r.Index.Status {
	case models.IndexComputed:
		fmt.Fprintf(bw, "Daily Index: %s\n\n", fixed(r.Index.Value, 2))
	case models.IndexFallback:
		fmt.Fprintf(bw, "Some weighted tickers are missing. Using last known index: %s\n", fixed(r.Index.Value, 2))
	default:
		fmt.Fprintln(bw, "Some weighted tickers are missing. Cannot calculate the index.")
	}

	return bw.Flush()
}

// WriteAll sends every report to sink, stopping at the first error.
func WriteAll(sink Sink, reports []models.DailyReport) error {
	for _, r := range reports {
		if err := sink.Write(r); err != nil {
			return fmt.Errorf("write report %s: %w", r.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

func writePrice(w io.Writer, label string, v float64, ok bool) {
	if !ok {
		fmt.Fprintf(w, "%s: N/A\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, fixed(v, 1))
}

// fixed formats v with the given number of decimals, rounding half away from zero.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
