package service

import (
	"context"
	"fmt"

	"github.com/guttosm/marketpulse/internal/aggregator"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/index"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/report"
)

// IndexStore persists the single last known index between runs.
type IndexStore interface {
	GetLastKnownIndex(ctx context.Context) (float64, bool, error)
	SaveLastKnownIndex(ctx context.Context, value float64) error
}

// RunOptions controls a batch report run.
//
// Fields:
//   - Store: where the last known index is read from / saved to; may be nil.
//   - Resume: seed the running index with the stored value.
//   - SaveIndex: store the final last known index after the run.
type RunOptions struct {
	Store     IndexStore
	Resume    bool
	SaveIndex bool
}

// Run aggregates records, hands every report to sink and returns the reports.
func Run(ctx context.Context, records []models.TradeRecord, calc *index.Calculator, sink report.Sink, opts RunOptions) ([]models.DailyReport, error) {
	if (opts.Resume || opts.SaveIndex) && opts.Store == nil {
		return nil, fmt.Errorf("index store required for resume/save")
	}

	var aggOpts []aggregator.Option
	if opts.Resume {
		v, ok, err := opts.Store.GetLastKnownIndex(ctx)
		if err != nil {
			return nil, fmt.Errorf("load last known index: %w", err)
		}
		if ok {
			aggOpts = append(aggOpts, aggregator.WithLastKnownIndex(v))
			logger.L().Info().Float64("last_index", v).Msg("resuming from stored index")
		}
	}

	agg := aggregator.New(calc, aggOpts...)
	reports := agg.ProcessAll(records)

	if err := report.WriteAll(sink, reports); err != nil {
		return nil, err
	}

	last, ok := agg.LastKnownIndex()
	if opts.SaveIndex && ok {
		if err := opts.Store.SaveLastKnownIndex(ctx, last); err != nil {
			return nil, fmt.Errorf("save last known index: %w", err)
		}
	}

	ev := logger.L().Info().Int("records", len(records)).Int("days", len(reports))
	if ok {
		ev = ev.Float64("last_index", last)
	}
	ev.Msg("report run completed")
	return reports, nil
}
