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
	variantsTable = "variants"
)

var variantColumns = []string{
	"id", "test_id", "title", "variant_order", "is_active", "activated_at", "created_at",
}

type VariantRepository interface {
	CreateBatch(ctx context.Context, variants []*domain.Variant) error
	GetByID(ctx context.Context, id string) (*domain.Variant, error)
	// ListByTestID devolve as variantes ordenadas pelo variant_order
	ListByTestID(ctx context.Context, testID string) ([]*domain.Variant, error)
	GetActiveByTestID(ctx context.Context, testID string) (*domain.Variant, error)
}

type variantRepository struct {
	conn *postgres.Connection
}

func NewVariantRepository(conn *postgres.Connection) VariantRepository {
	return &variantRepository{
		conn: conn,
	}
}

func (r *variantRepository) CreateBatch(ctx context.Context, variants []*domain.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(variantsTable).
		Columns("id", "test_id", "title", "variant_order", "is_active", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, variant := range variants {
		builder = builder.Values(
			variant.ID,
			variant.TestID,
			variant.Title,
			variant.Order,
			variant.IsActive,
			variant.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
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

func (r *variantRepository) GetByID(ctx context.Context, id string) (*domain.Variant, error) {
	query, args, err := squirrel.
		Select(variantColumns...).
		From(variantsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	variant, err := scanVariant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear variante: %w", err)
	}

	return variant, nil
}

func (r *variantRepository) ListByTestID(ctx context.Context, testID string) ([]*domain.Variant, error) {
	query, args, err := squirrel.
		Select(variantColumns...).
		From(variantsTable).
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

	variants := make([]*domain.Variant, 0)
	for rows.Next() {
		variant, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear variantes: %w", err)
		}
		variants = append(variants, variant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return variants, nil
}

func (r *variantRepository) GetActiveByTestID(ctx context.Context, testID string) (*domain.Variant, error) {
	query, args, err := squirrel.
		Select(variantColumns...).
		From(variantsTable).
		Where(squirrel.Eq{"test_id": testID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	variant, err := scanVariant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear variante ativa: %w", err)
	}

	return variant, nil
}

func scanVariant(row rowScanner) (*domain.Variant, error) {
	variant := &domain.Variant{}
	var activatedAt sql.NullTime

	err := row.Scan(
		&variant.ID,
		&variant.TestID,
		&variant.Title,
		&variant.Order,
		&variant.IsActive,
		&activatedAt,
		&variant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if activatedAt.Valid {
		variant.ActivatedAt = &activatedAt.Time
	}

	return variant, nil
}
