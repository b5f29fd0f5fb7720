package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

const (
	analyticsPollsTable = "analytics_polls"
)

var analyticsPollColumns = []string{
	"id", "variant_id", "polled_at", "views", "impressions", "ctr", "average_view_duration",
}

type AnalyticsPollRepository interface {
	// Create grava uma observação. A série é append-only: não existe
	// update nem delete de polls.
	Create(ctx context.Context, poll *domain.AnalyticsPoll) error
	ListByVariantID(ctx context.Context, variantID string) ([]*domain.AnalyticsPoll, error)
	// GetLatestByVariantID devolve o poll mais recente da variante, ou nil.
	// Como as métricas da plataforma são acumuladas desde a ativação, o
	// poll mais recente é também o consolidado da variante.
	GetLatestByVariantID(ctx context.Context, variantID string) (*domain.AnalyticsPoll, error)
}

type analyticsPollRepository struct {
	conn *postgres.Connection
}

func NewAnalyticsPollRepository(conn *postgres.Connection) AnalyticsPollRepository {
	return &analyticsPollRepository{
		conn: conn,
	}
}

func (r *analyticsPollRepository) Create(ctx context.Context, poll *domain.AnalyticsPoll) error {
	query, args, err := squirrel.
		Insert(analyticsPollsTable).
		Columns(analyticsPollColumns...).
		Values(
			poll.ID,
			poll.VariantID,
			poll.PolledAt,
			poll.Views,
			poll.Impressions,
			poll.CTR,
			poll.AverageViewDuration,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *analyticsPollRepository) ListByVariantID(ctx context.Context, variantID string) ([]*domain.AnalyticsPoll, error) {
	query, args, err := squirrel.
		Select(analyticsPollColumns...).
		From(analyticsPollsTable).
		Where(squirrel.Eq{"variant_id": variantID}).
		OrderBy("polled_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	polls := make([]*domain.AnalyticsPoll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear polls: %w", err)
		}
		polls = append(polls, poll)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return polls, nil
}

func (r *analyticsPollRepository) GetLatestByVariantID(ctx context.Context, variantID string) (*domain.AnalyticsPoll, error) {
	query, args, err := squirrel.
		Select(analyticsPollColumns...).
		From(analyticsPollsTable).
		Where(squirrel.Eq{"variant_id": variantID}).
		OrderBy("polled_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	poll, err := scanPoll(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear poll: %w", err)
	}

	return poll, nil
}

func scanPoll(row rowScanner) (*domain.AnalyticsPoll, error) {
	poll := &domain.AnalyticsPoll{}

	err := row.Scan(
		&poll.ID,
		&poll.VariantID,
		&poll.PolledAt,
		&poll.Views,
		&poll.Impressions,
		&poll.CTR,
		&poll.AverageViewDuration,
	)
	if err != nil {
		return nil, err
	}

	return poll, nil
}
