package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

const (
	titleTestsTable = "title_tests"
)

var titleTestColumns = []string{
	"id", "channel_id", "video_id", "status", "pause_reason",
	"rotation_interval_minutes", "winner_metric", "start_date", "end_date",
	"current_variant_index", "winner_variant_id", "created_at", "completed_at",
}

type TitleTestRepository interface {
	Create(ctx context.Context, test *domain.TitleTest) error
	GetByID(ctx context.Context, id string) (*domain.TitleTest, error)
	ListByStatus(ctx context.Context, statuses []domain.TestStatus) ([]*domain.TitleTest, error)
	// TransitionStatus aplica a transição somente se o status atual estiver
	// em `from`. Retorna false quando a guarda rejeitou (linha não afetada).
	// É a guarda única de máquina de estados compartilhada entre o
	// agendador e a API externa.
	TransitionStatus(ctx context.Context, id string, from []domain.TestStatus, to domain.TestStatus, reason *domain.PauseReason) (bool, error)
}

type titleTestRepository struct {
	conn *postgres.Connection
}

func NewTitleTestRepository(conn *postgres.Connection) TitleTestRepository {
	return &titleTestRepository{
		conn: conn,
	}
}

func (r *titleTestRepository) Create(ctx context.Context, test *domain.TitleTest) error {
	query, args, err := squirrel.
		Insert(titleTestsTable).
		Columns(
			"id", "channel_id", "video_id", "status",
			"rotation_interval_minutes", "winner_metric", "start_date",
			"end_date", "created_at",
		).
		Values(
			test.ID,
			test.ChannelID,
			test.VideoID,
			test.Status,
			test.RotationIntervalMinutes,
			test.WinnerMetric,
			test.StartDate,
			test.EndDate,
			test.CreatedAt,
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

func (r *titleTestRepository) GetByID(ctx context.Context, id string) (*domain.TitleTest, error) {
	query, args, err := squirrel.
		Select(titleTestColumns...).
		From(titleTestsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	test, err := r.scanTest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear teste: %w", err)
	}

	return test, nil
}

func (r *titleTestRepository) ListByStatus(ctx context.Context, statuses []domain.TestStatus) ([]*domain.TitleTest, error) {
	query, args, err := squirrel.
		Select(titleTestColumns...).
		From(titleTestsTable).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("created_at ASC").
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

	tests := make([]*domain.TitleTest, 0)
	for rows.Next() {
		test, err := r.scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear testes: %w", err)
		}
		tests = append(tests, test)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return tests, nil
}

func (r *titleTestRepository) TransitionStatus(
	ctx context.Context,
	id string,
	from []domain.TestStatus,
	to domain.TestStatus,
	reason *domain.PauseReason,
) (bool, error) {
	builder := squirrel.
		Update(titleTestsTable).
		Set("status", to).
		Set("pause_reason", reason).
		Where(squirrel.Eq{"id": id, "status": from}).
		PlaceholderFormat(squirrel.Dollar)

	if to == domain.TestStatusCompleted || to == domain.TestStatusCancelled {
		builder = builder.Set("completed_at", time.Now())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *titleTestRepository) scanTest(row rowScanner) (*domain.TitleTest, error) {
	test := &domain.TitleTest{}
	var pauseReason sql.NullString
	var endDate, completedAt sql.NullTime
	var currentIndex sql.NullInt64
	var winnerVariantID sql.NullString

	err := row.Scan(
		&test.ID,
		&test.ChannelID,
		&test.VideoID,
		&test.Status,
		&pauseReason,
		&test.RotationIntervalMinutes,
		&test.WinnerMetric,
		&test.StartDate,
		&endDate,
		&currentIndex,
		&winnerVariantID,
		&test.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if pauseReason.Valid {
		reason := domain.PauseReason(pauseReason.String)
		test.PauseReason = &reason
	}
	if endDate.Valid {
		test.EndDate = &endDate.Time
	}
	if completedAt.Valid {
		test.CompletedAt = &completedAt.Time
	}
	if currentIndex.Valid {
		index := int(currentIndex.Int64)
		test.CurrentVariantIndex = &index
	}
	if winnerVariantID.Valid {
		test.WinnerVariantID = &winnerVariantID.String
	}

	return test, nil
}
