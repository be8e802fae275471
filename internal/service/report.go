package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/marketpulse/internal/aggregator"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/index"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/storage"
)

// ReportService defines business logic for computing daily reports from stored trades.
type ReportService interface {
	DailyReports(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DailyReport, error)
	LastIndex(ctx context.Context) (float64, bool, error)
}

type reportService struct {
	repo storage.TradesRepository
	calc *index.Calculator
}

func NewReportService(repo storage.TradesRepository, calc *index.Calculator) ReportService {
	return &reportService{repo: repo, calc: calc}
}

// DailyReports loads the trades in range and aggregates them with a fresh
// aggregator, so concurrent requests never share running state.
func (s *reportService) DailyReports(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DailyReport, error) {
	start := time.Now()
	trades, err := s.repo.ListTrades(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	reports := aggregator.New(s.calc).ProcessAll(trades)
	logger.L().Debug().
		Int("trades", len(trades)).
		Int("days", len(reports)).
		Dur("elapsed", time.Since(start)).
		Msg("reports computed")
	return reports, nil
}

func (s *reportService) LastIndex(ctx context.Context) (float64, bool, error) {
	return s.repo.GetLastKnownIndex(ctx)
}
