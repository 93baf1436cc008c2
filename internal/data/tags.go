package data

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

type TagModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

type tagRow struct {
	Username string `db:"username"`
	entities.Tag
}

func (m *TagModel) Insert(ctx context.Context, username string, tags []entities.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]tagRow, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, tagRow{Username: username, Tag: tag})
	}

	const query = `
		INSERT INTO tags (username, name, description, background_color, foreground_color)
		VALUES (:username, :name, :description, :background_color, :foreground_color)
	`
	start := time.Now()
	_, err := m.DB.NamedExecContext(ctx, query, rows)
	observeQuery(m.MetricsService, "INSERT", "tags", start, err)
	if err != nil {
		return fmt.Errorf("inserting %d tags for %s: %w", len(tags), username, err)
	}
	return nil
}

func (m *TagModel) GetAll(ctx context.Context, username string) ([]entities.Tag, error) {
	const query = `SELECT name, description, background_color, foreground_color FROM tags WHERE username = $1 ORDER BY name`
	tags := []entities.Tag{}
	start := time.Now()
	err := m.DB.SelectContext(ctx, &tags, query, username)
	observeQuery(m.MetricsService, "SELECT", "tags", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting tags for %s: %w", username, err)
	}
	return tags, nil
}
