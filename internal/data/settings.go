package data

import (
	"context"
	"fmt"
	"time"

	set "github.com/deckarep/golang-set/v2"
	"github.com/lib/pq"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

// SettingsModel stores per user settings as string key/value pairs, and the user's ignored assets.
type SettingsModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

func (m *SettingsModel) Set(ctx context.Context, username string, settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}
	names := make([]string, 0, len(settings))
	values := make([]string, 0, len(settings))
	for name, value := range settings {
		names = append(names, name)
		values = append(values, value)
	}

	const query = `
		INSERT INTO settings (username, name, value)
		SELECT $1::text, UNNEST($2::text[]), UNNEST($3::text[])
		ON CONFLICT (username, name) DO UPDATE SET value = EXCLUDED.value
	`
	start := time.Now()
	_, err := m.DB.ExecContext(ctx, query, username, pq.Array(names), pq.Array(values))
	observeQuery(m.MetricsService, "INSERT", "settings", start, err)
	if err != nil {
		return fmt.Errorf("setting %d settings for %s: %w", len(settings), username, err)
	}
	return nil
}

func (m *SettingsModel) GetAll(ctx context.Context, username string) (map[string]string, error) {
	const query = `SELECT name, value FROM settings WHERE username = $1`
	var rows []struct {
		Name  string `db:"name"`
		Value string `db:"value"`
	}
	start := time.Now()
	err := m.DB.SelectContext(ctx, &rows, query, username)
	observeQuery(m.MetricsService, "SELECT", "settings", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting settings for %s: %w", username, err)
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Name] = row.Value
	}
	return settings, nil
}

func (m *SettingsModel) AddIgnoredAssets(ctx context.Context, username string, assets []string) error {
	if len(assets) == 0 {
		return nil
	}
	const query = `
		INSERT INTO ignored_assets (username, asset)
		SELECT $1::text, UNNEST($2::text[])
		ON CONFLICT DO NOTHING
	`
	start := time.Now()
	_, err := m.DB.ExecContext(ctx, query, username, pq.Array(assets))
	observeQuery(m.MetricsService, "INSERT", "ignored_assets", start, err)
	if err != nil {
		return fmt.Errorf("adding ignored assets for %s: %w", username, err)
	}
	return nil
}

func (m *SettingsModel) GetIgnoredAssets(ctx context.Context, username string) (set.Set[string], error) {
	const query = `SELECT asset FROM ignored_assets WHERE username = $1`
	var assets []string
	start := time.Now()
	err := m.DB.SelectContext(ctx, &assets, query, username)
	observeQuery(m.MetricsService, "SELECT", "ignored_assets", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting ignored assets for %s: %w", username, err)
	}
	return set.NewSet(assets...), nil
}
