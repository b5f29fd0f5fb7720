package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

const (
	rotationLogsTable = "rotation_logs"
)

var rotationLogColumns = []string{
	"id", "test_id", "variant_id", "rotated_at", "rotation_order",
	"duration_minutes", "views_at_rotation", "ctr_at_rotation",
}

type RotationLogRepository interface {
	ListByTestID(ctx context.Context, testID string) ([]*domain.RotationLog, error)
	CountByTestID(ctx context.Context, testID string) (int, error)
}

type rotationLogRepository struct {
	conn *postgres.Connection
}

func NewRotationLogRepository(conn *postgres.Connection) RotationLogRepository {
	return &rotationLogRepository{
		conn: conn,
	}
}

func (r *rotationLogRepository) ListByTestID(ctx context.Context, testID string) ([]*domain.RotationLog, error) {
	query, args, err := squirrel.
		Select(rotationLogColumns...).
		From(rotationLogsTable).
		Where(squirrel.Eq{"test_id": testID}).
		OrderBy("rotation_order ASC").
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

	logs := make([]*domain.RotationLog, 0)
	for rows.Next() {
		entry := &domain.RotationLog{}
		err := rows.Scan(
			&entry.ID,
			&entry.TestID,
			&entry.VariantID,
			&entry.RotatedAt,
			&entry.RotationOrder,
			&entry.DurationMinutes,
			&entry.ViewsAtRotation,
			&entry.CTRAtRotation,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear logs de rotação: %w", err)
		}
		logs = append(logs, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}

func (r *rotationLogRepository) CountByTestID(ctx context.Context, testID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(rotationLogsTable).
		Where(squirrel.Eq{"test_id": testID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar logs de rotação: %w", err)
	}

	return count, nil
}
