package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

// RotationRecord descreve uma rotação a ser aplicada atomicamente
type RotationRecord struct {
	LogID             string
	TestID            string
	PreviousVariantID *string
	NextVariantID     string
	NextOrder         int
	RotatedAt         time.Time
	// DurationMinutes, ViewsAtRotation e CTRAtRotation descrevem a
	// variante que está saindo
	DurationMinutes int
	ViewsAtRotation int64
	CTRAtRotation   float64
}

// CompletionRecord descreve a finalização de um teste com seus sumários
type CompletionRecord struct {
	TestID          string
	WinnerVariantID *string
	CompletedAt     time.Time
	Summaries       []*domain.VariantSummary
}

// RotationRepository aplica as mudanças de estado compostas da rotação.
// Cada operação é uma única transação: ou tudo é aplicado, ou nada é.
type RotationRepository interface {
	// ApplyRotation desativa a variante anterior (se houver), ativa a
	// próxima, atualiza o índice corrente do teste e grava o log de
	// rotação, tudo na mesma transação.
	ApplyRotation(ctx context.Context, record *RotationRecord) error
	// ApplyCompletion marca o teste como completado, grava os sumários
	// por variante e o vencedor selecionado.
	ApplyCompletion(ctx context.Context, record *CompletionRecord) error
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type rotationRepository struct {
	conn *postgres.Connection
}

func NewRotationRepository(conn *postgres.Connection) RotationRepository {
	return &rotationRepository{
		conn: conn,
	}
}

func (r *rotationRepository) ApplyRotation(ctx context.Context, record *RotationRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if record.PreviousVariantID != nil {
			if err := execBuilder(ctx, tx, psql.
				Update(variantsTable).
				Set("is_active", false).
				Where(squirrel.Eq{"id": *record.PreviousVariantID})); err != nil {
				return errors.Wrap(err, "erro ao desativar variante anterior")
			}
		}

		if err := execBuilder(ctx, tx, psql.
			Update(variantsTable).
			Set("is_active", true).
			Set("activated_at", record.RotatedAt).
			Where(squirrel.Eq{"id": record.NextVariantID})); err != nil {
			return errors.Wrap(err, "erro ao ativar próxima variante")
		}

		// a primeira rotação ativa um teste pendente; um teste que saiu
		// de PENDING/ACTIVE entre a checagem do executor e esta
		// transação não pode mais rotacionar
		affected, err := execBuilderCount(ctx, tx, psql.
			Update(titleTestsTable).
			Set("current_variant_index", record.NextOrder).
			Set("status", domain.TestStatusActive).
			Where(squirrel.Eq{
				"id":     record.TestID,
				"status": []domain.TestStatus{domain.TestStatusPending, domain.TestStatusActive},
			}))
		if err != nil {
			return errors.Wrap(err, "erro ao atualizar índice corrente do teste")
		}
		if affected == 0 {
			return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s não pode mais rotacionar", record.TestID)
		}

		if err := execBuilder(ctx, tx, psql.
			Insert(rotationLogsTable).
			Columns(rotationLogColumns...).
			Values(
				record.LogID,
				record.TestID,
				record.NextVariantID,
				record.RotatedAt,
				record.NextOrder,
				record.DurationMinutes,
				record.ViewsAtRotation,
				record.CTRAtRotation,
			)); err != nil {
			return errors.Wrap(err, "erro ao gravar log de rotação")
		}

		return nil
	})
}

func (r *rotationRepository) ApplyCompletion(ctx context.Context, record *CompletionRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		affected, err := execBuilderCount(ctx, tx, psql.
			Update(titleTestsTable).
			Set("status", domain.TestStatusCompleted).
			Set("winner_variant_id", record.WinnerVariantID).
			Set("completed_at", record.CompletedAt).
			Where(squirrel.Eq{"id": record.TestID, "status": domain.TestStatusActive}))
		if err != nil {
			return errors.Wrap(err, "erro ao marcar teste como completado")
		}

		// o teste saiu de ACTIVE entre a checagem do executor e esta
		// transação (cancelamento concorrente). Abortar sem gravar nada,
		// sumários só existem para testes completados.
		if affected == 0 {
			return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s não está mais ativo", record.TestID)
		}

		if err := execBuilder(ctx, tx, psql.
			Update(variantsTable).
			Set("is_active", false).
			Where(squirrel.Eq{"test_id": record.TestID, "is_active": true})); err != nil {
			return errors.Wrap(err, "erro ao desativar a última variante")
		}

		for _, summary := range record.Summaries {
			if err := execBuilder(ctx, tx, psql.
				Insert(variantSummariesTable).
				Columns(variantSummaryColumns...).
				Values(
					summary.ID,
					summary.VariantID,
					summary.TestID,
					summary.VariantOrder,
					summary.Title,
					summary.TotalViews,
					summary.TotalImpressions,
					summary.FinalCTR,
					summary.FinalAverageViewDuration,
					summary.CreatedAt,
				)); err != nil {
				return errors.Wrap(err, "erro ao gravar sumário de variante")
			}
		}

		return nil
	})
}

// execBuilder materializa o builder e executa na transação
func execBuilder(ctx context.Context, tx *sql.Tx, builder squirrel.Sqlizer) error {
	_, err := execBuilderCount(ctx, tx, builder)
	return err
}

// execBuilderCount executa e devolve quantas linhas foram afetadas
func execBuilderCount(ctx context.Context, tx *sql.Tx, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
