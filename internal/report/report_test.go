package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func day(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

func TestTextSink_Write(t *testing.T) {
	cases := []struct {
		name   string
		report models.DailyReport
		want   []string
	}{
		{
			name: "computed index",
			report: models.DailyReport{
				Date: day(15),
				Stats: []models.TickerDailyStats{
					{Ticker: "ABC", Trades: 1, HasData: true, Open: 155, Close: 155, High: 155, Low: 155, TradedValue: 310000},
					{Ticker: "MEGA"},
				},
				Index: models.IndexOutcome{Status: models.IndexComputed, Value: 1799.5},
			},
			want: []string{
				"Date 2025-02-15",
				"Ticker: ABC",
				"Open price: 155.0",
				"Close price: 155.0",
				"Highest price: 155.0",
				"Lowest price: 155.0",
				"Traded volume: 310000.0",
				"Ticker: MEGA",
				"Open price: N/A",
				"Lowest price: N/A",
				"Traded volume: 0.0",
				"Daily Index: 1799.50",
			},
		},
		{
			name:   "fallback index",
			report: models.DailyReport{Date: day(17), Index: models.IndexOutcome{Status: models.IndexFallback, Value: 76}},
			want:   []string{"Date 2025-02-17", "Using last known index: 76.00"},
		},
		{
			name:   "unavailable index",
			report: models.DailyReport{Date: day(14), Index: models.IndexOutcome{Status: models.IndexUnavailable}},
			want:   []string{"Cannot calculate the index."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTextSink(&buf).Write(tc.report); err != nil {
				t.Fatalf("Write: %v", err)
			}
			out := buf.String()
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Fatalf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestFixed_Rounding(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{155, 1, "155.0"},
		{0.25, 1, "0.3"},
		{1799.5, 2, "1799.50"},
		{76.004, 2, "76.00"},
	}
	for _, c := range cases {
		if got := fixed(c.v, c.places); got != c.want {
			t.Fatalf("fixed(%v,%d)=%q want %q", c.v, c.places, got, c.want)
		}
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Write(models.DailyReport) error {
	f.calls++
	return errors.New("closed")
}

func TestWriteAll_StopsOnError(t *testing.T) {
	s := &failingSink{}
	err := WriteAll(s, []models.DailyReport{{Date: day(14)}, {Date: day(15)}})
	if err == nil || !strings.Contains(err.Error(), "2025-02-14") {
		t.Fatalf("expected error for first day, got %v", err)
	}
	if s.calls != 1 {
		t.Fatalf("expected 1 call, got %d", s.calls)
	}
}
