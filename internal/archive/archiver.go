package archive

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurante/internal/model"

	"github.com/rs/zerolog"
)

// DashboardSource builds the dashboard for a calendar day given as YYYY-MM-DD.
type DashboardSource interface {
	Dashboard(ctx context.Context, date string) (*model.Dashboard, error)
}

// Archiver snapshots daily dashboards into a Store.
type Archiver struct {
	reports DashboardSource
	store   Store
	logger  zerolog.Logger
}

// NewArchiver creates a new dashboard archiver.
func NewArchiver(reports DashboardSource, store Store, logger zerolog.Logger) *Archiver {
	return &Archiver{
		reports: reports,
		store:   store,
		logger:  logger.With().Str("component", "archiver").Logger(),
	}
}

// Key returns the object key of the snapshot for the given day.
func Key(date time.Time) string {
	return fmt.Sprintf("dashboard/%s.json.gz", date.Format("2006-01-02"))
}

// ArchiveDay stores the dashboard of date's calendar day as gzipped JSON
// and returns the key it was stored under.
func (a *Archiver) ArchiveDay(ctx context.Context, date time.Time) (string, error) {
	day := date.Format("2006-01-02")

	dashboard, err := a.reports.Dashboard(ctx, day)
	if err != nil {
		return "", fmt.Errorf("failed to build dashboard for %s: %w", day, err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Name = day + ".json"
	zw.ModTime = time.Now()
	if err := json.NewEncoder(zw).Encode(model.NewDashboardView(dashboard)); err != nil {
		return "", fmt.Errorf("failed to encode dashboard for %s: %w", day, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress dashboard for %s: %w", day, err)
	}

	key := Key(date)
	if err := a.store.Put(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return "", fmt.Errorf("failed to store dashboard for %s: %w", day, err)
	}

	a.logger.Info().
		Str("date", day).
		Str("key", key).
		Int("orders", dashboard.TodaySales.OrderCount).
		Msg("dashboard archived")

	return key, nil
}
