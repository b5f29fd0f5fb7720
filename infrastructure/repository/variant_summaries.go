package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

const (
	variantSummariesTable = "variant_summaries"
)

var variantSummaryColumns = []string{
	"id", "variant_id", "test_id", "variant_order", "title", "total_views",
	"total_impressions", "final_ctr", "final_average_view_duration", "created_at",
}

// VariantSummaryRepository lê os sumários consolidados de um teste. A
// escrita acontece somente dentro da transação de finalização
// (RotationRepository.ApplyCompletion).
type VariantSummaryRepository interface {
	ListByTestID(ctx context.Context, testID string) ([]*domain.VariantSummary, error)
}

type variantSummaryRepository struct {
	conn *postgres.Connection
}

func NewVariantSummaryRepository(conn *postgres.Connection) VariantSummaryRepository {
	return &variantSummaryRepository{
		conn: conn,
	}
}

func (r *variantSummaryRepository) ListByTestID(ctx context.Context, testID string) ([]*domain.VariantSummary, error) {
	query, args, err := squirrel.
		Select(variantSummaryColumns...).
		From(variantSummariesTable).
		Where(squirrel.Eq{"test_id": testID}).
		OrderBy("variant_order ASC").
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

	summaries := make([]*domain.VariantSummary, 0)
	for rows.Next() {
		summary := &domain.VariantSummary{}
		err := rows.Scan(
			&summary.ID,
			&summary.VariantID,
			&summary.TestID,
			&summary.VariantOrder,
			&summary.Title,
			&summary.TotalViews,
			&summary.TotalImpressions,
			&summary.FinalCTR,
			&summary.FinalAverageViewDuration,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear sumários: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}
