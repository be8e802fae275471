package ingestion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	columnCount     = 4
	maxLineBytes    = 1 << 20
)

// Result is the outcome of reading one market data file.
type Result struct {
	File    string
	Records []models.TradeRecord
	Skipped int
}

// errInvalidRecord marks a row that parsed but breaks a record invariant.
var errInvalidRecord = errors.New("invalid record")

// ReadFile parses a ';'-separated market data file.
//
// Layout: one header row followed by rows of
//
//	timestamp;ticker;price;volume
//	2025-02-15 10:30:00;ABC;155.0;2000
//
// Rows are read line by line; one malformed line costs exactly that line.
//
// It fails on:
//   - a missing or short header (fewer than 4 columns)
//   - I/O errors, lines longer than 1 MiB, or context cancellation
//
// It skips, with a warning:
//   - rows with the wrong number of columns
//   - rows whose timestamp, price or volume do not parse
//   - rows with price <= 0, volume < 0 or an empty ticker
func ReadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := parse(ctx, f)
	if err != nil {
		return Result{}, err
	}
	res.File = path
	return res, nil
}

func parse(ctx context.Context, in io.Reader) (Result, error) {
	log := logger.Component("ingestion")

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Result{}, fmt.Errorf("read header: %w", err)
		}
		return Result{}, errors.New("read header: empty file")
	}
	header := splitLine(sc.Text())
	if len(header) < columnCount {
		return Result{}, fmt.Errorf("invalid header length: expected %d, got %d", columnCount, len(header))
	}

	var res Result
	lineNumber := 1 // header already read

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
		lineNumber++

		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec := splitLine(line)
		tr, err := recordToTrade(rec)
		if err != nil {
			res.Skipped++
			log.Warn().Int("line", lineNumber).Str("row", line).Err(err).Msg("skipping invalid row")
			continue
		}
		res.Records = append(res.Records, tr)
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("read line after %d: %w", lineNumber, err)
	}

	return res, nil
}

// splitLine splits one row on ';'. The format has no quoting, so a quote
// character is ordinary data and can only invalidate its own row.
func splitLine(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), ";")
}

// recordToTrade converts one row into a TradeRecord and enforces its invariants.
//
//	0 timestamp → Time   ("2006-01-02 15:04:05")
//	1 ticker    → Ticker (non-empty)
//	2 price     → Price  (> 0, comma or dot decimal separator)
//	3 volume    → Volume (>= 0)
func recordToTrade(rec []string) (models.TradeRecord, error) {
	var t models.TradeRecord

	if len(rec) != columnCount {
		return t, fmt.Errorf("invalid column count: expected %d got %d", columnCount, len(rec))
	}

	ts, err := time.Parse(timestampLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return t, fmt.Errorf("invalid timestamp: %v", err)
	}
	t.Time = ts

	t.Ticker = strings.TrimSpace(rec[1])

	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."), 64)
	if err != nil {
		return t, fmt.Errorf("invalid price: %v", err)
	}
	t.Price = price

	volume, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid volume: %v", err)
	}
	t.Volume = volume

	switch {
	case t.Ticker == "":
		return t, fmt.Errorf("%w: empty ticker", errInvalidRecord)
	case math.IsNaN(t.Price) || math.IsInf(t.Price, 0):
		return t, fmt.Errorf("%w: price must be finite", errInvalidRecord)
	case t.Price <= 0:
		return t, fmt.Errorf("%w: price must be positive, got %v", errInvalidRecord, t.Price)
	case t.Volume < 0:
		return t, fmt.Errorf("%w: volume must not be negative, got %d", errInvalidRecord, t.Volume)
	}
	return t, nil
}
