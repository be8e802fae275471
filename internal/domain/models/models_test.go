package models

import (
	"testing"
	"time"
)

func TestTradeRecord_Date(t *testing.T) {
	r := TradeRecord{Time: time.Date(2025, 2, 15, 23, 59, 59, 0, time.UTC), Ticker: "ABC", Price: 1, Volume: 1}
	want := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	if !r.Date().Equal(want) {
		t.Fatalf("Date()=%v, want %v", r.Date(), want)
	}
}

func TestWeightTable_TickersSortedAndClone(t *testing.T) {
	w := WeightTable{"TRX": 0.2, "ABC": 0.1, "NGL": 0.4}
	got := w.Tickers()
	want := []string{"ABC", "NGL", "TRX"}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tickers()[%d]=%q want %q", i, got[i], want[i])
		}
	}
	if w.Weight("MISSING") != 0 {
		t.Fatalf("unknown ticker must weigh 0")
	}

	c := w.Clone()
	c["ABC"] = 9
	if w["ABC"] != 0.1 {
		t.Fatalf("clone must not alias the original table")
	}
}

func TestIndexOutcome_HasValue(t *testing.T) {
	cases := []struct {
		status IndexStatus
		want   bool
	}{
		{IndexComputed, true},
		{IndexFallback, true},
		{IndexUnavailable, false},
	}
	for _, c := range cases {
		if got := (IndexOutcome{Status: c.status}).HasValue(); got != c.want {
			t.Fatalf("%s: HasValue()=%v want %v", c.status, got, c.want)
		}
	}
}

func TestTradeRecord_DateUsesWallClock(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	r := TradeRecord{Time: time.Date(2025, 2, 15, 22, 0, 0, 0, loc)}
	want := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	if !r.Date().Equal(want) {
		t.Fatalf("Date()=%v, want %v", r.Date(), want)
	}
}
