package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/index"
	"github.com/guttosm/marketpulse/internal/report"
)

type stubRepo struct {
	trades  []models.TradeRecord
	err     error
	last    float64
	hasLast bool
	lastErr error
	saveErr error
	saved   []float64
}

func (s *stubRepo) InsertTradesBatch(string, []models.TradeRecord) error { return nil }
func (s *stubRepo) ListTrades(context.Context, *time.Time, *time.Time) ([]models.TradeRecord, error) {
	return s.trades, s.err
}
func (s *stubRepo) HasIngestionForFile(string) (bool, error) { return false, nil }
func (s *stubRepo) UpsertIngestionLog(string, int, int) error { return nil }
func (s *stubRepo) DeleteTradesByFile(string) error { return nil }
func (s *stubRepo) GetLastKnownIndex(context.Context) (float64, bool, error) {
	return s.last, s.hasLast, s.lastErr
}
func (s *stubRepo) SaveLastKnownIndex(_ context.Context, v float64) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, v)
	return nil
}

func ts(day, hour int) time.Time { return time.Date(2025, 2, day, hour, 0, 0, 0, time.UTC) }

func scenario() []models.TradeRecord {
	return []models.TradeRecord{
		{Time: ts(14, 9), Ticker: "ABC", Price: 155, Volume: 1},
		{Time: ts(15, 9), Ticker: "ABC", Price: 160, Volume: 1},
		{Time: ts(15, 10), Ticker: "RST", Price: 200, Volume: 1},
		{Time: ts(17, 9), Ticker: "ABC", Price: 170, Volume: 1},
	}
}

func testCalc() *index.Calculator {
	return index.NewCalculator(models.WeightTable{"ABC": 0.1, "RST": 0.3})
}

func TestReportService_DailyReports(t *testing.T) {
	cases := []struct {
		name     string
		repo     *stubRepo
		wantErr  bool
		wantDays int
	}{
		{name: "success", repo: &stubRepo{trades: scenario()}, wantDays: 3},
		{name: "no trades", repo: &stubRepo{}, wantDays: 0},
		{name: "repo error", repo: &stubRepo{err: errors.New("boom")}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewReportService(tc.repo, testCalc())
			out, err := svc.DailyReports(context.Background(), nil, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(out) != tc.wantDays {
				t.Fatalf("days: want %d got %d", tc.wantDays, len(out))
			}
		})
	}
}

func TestReportService_RequestsDoNotShareState(t *testing.T) {
	repo := &stubRepo{trades: scenario()}
	svc := NewReportService(repo, testCalc())

	if _, err := svc.DailyReports(context.Background(), nil, nil); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// second request only sees the first day; it must not inherit 76.0
	repo.trades = scenario()[:1]
	out, err := svc.DailyReports(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if out[0].Index.Status != models.IndexUnavailable {
		t.Fatalf("expected unavailable index, got %+v", out[0].Index)
	}
}

func TestReportService_LastIndex(t *testing.T) {
	svc := NewReportService(&stubRepo{last: 76, hasLast: true}, testCalc())
	v, ok, err := svc.LastIndex(context.Background())
	if err != nil || !ok || v != 76 {
		t.Fatalf("got (%v,%v,%v)", v, ok, err)
	}
}

func TestRun_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		opts      func(*stubRepo) RunOptions
		store     *stubRepo
		records   []models.TradeRecord
		wantErr   bool
		wantSaved []float64
		wantOut   string
	}{
		{
			name:    "plain run",
			opts:    func(*stubRepo) RunOptions { return RunOptions{} },
			records: scenario(),
			wantOut: "Using last known index: 76.00",
		},
		{
			name:      "save index",
			store:     &stubRepo{},
			opts:      func(s *stubRepo) RunOptions { return RunOptions{Store: s, SaveIndex: true} },
			records:   scenario(),
			wantSaved: []float64{76},
		},
		{
			name:    "resume seeds fallback",
			store:   &stubRepo{last: 50, hasLast: true},
			opts:    func(s *stubRepo) RunOptions { return RunOptions{Store: s, Resume: true} },
			records: scenario()[:1],
			wantOut: "Using last known index: 50.00",
		},
		{
			name:    "resume without stored index",
			store:   &stubRepo{},
			opts:    func(s *stubRepo) RunOptions { return RunOptions{Store: s, Resume: true} },
			records: scenario()[:1],
			wantOut: "Cannot calculate the index.",
		},
		{
			name:    "nothing computed, nothing saved",
			store:   &stubRepo{},
			opts:    func(s *stubRepo) RunOptions { return RunOptions{Store: s, SaveIndex: true} },
			records: scenario()[:1],
		},
		{
			name:    "store required",
			opts:    func(*stubRepo) RunOptions { return RunOptions{SaveIndex: true} },
			wantErr: true,
		},
		{
			name:    "resume load error",
			store:   &stubRepo{lastErr: errors.New("db down")},
			opts:    func(s *stubRepo) RunOptions { return RunOptions{Store: s, Resume: true} },
			records: scenario(),
			wantErr: true,
		},
		{
			name:    "save error",
			store:   &stubRepo{saveErr: errors.New("db down")},
			opts:    func(s *stubRepo) RunOptions { return RunOptions{Store: s, SaveIndex: true} },
			records: scenario(),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := Run(context.Background(), tc.records, testCalc(), report.NewTextSink(&buf), tc.opts(tc.store))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.wantOut != "" && !strings.Contains(buf.String(), tc.wantOut) {
				t.Fatalf("output missing %q:\n%s", tc.wantOut, buf.String())
			}
			if tc.store != nil && len(tc.store.saved) != len(tc.wantSaved) {
				t.Fatalf("saved=%v want %v", tc.store.saved, tc.wantSaved)
			}
			for i := range tc.wantSaved {
				if tc.store.saved[i] != tc.wantSaved[i] {
					t.Fatalf("saved=%v want %v", tc.store.saved, tc.wantSaved)
				}
			}
		})
	}
}
