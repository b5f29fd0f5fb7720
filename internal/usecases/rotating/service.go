package rotating

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube"
	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/internal/usecases/winner"
	"github.com/titlelab/title-rotator-api/pkg/metrics"
	"github.com/titlelab/title-rotator-api/pkg/utils"
)

// Outcome é o resultado de um ciclo de rotação
type Outcome string

const (
	// OutcomeAdvanced indica que a próxima variante foi ativada
	OutcomeAdvanced Outcome = "advanced"
	// OutcomeCompleted indica que o teste foi finalizado neste ciclo
	OutcomeCompleted Outcome = "completed"
	// OutcomeSkipped indica que nada mudou: teste não está mais ativo ou
	// a falha foi transiente e o próximo disparo do timer tenta de novo
	OutcomeSkipped Outcome = "skipped"
)

// Rotator avança um teste para a próxima variante da sequência
type Rotator interface {
	Rotate(ctx context.Context, testID string) (Outcome, error)
}

type Service struct {
	cfg            *config.Config
	integrator     youtube.YouTubeIntegrator
	testRepository repository.TitleTestRepository
	variantRepo    repository.VariantRepository
	pollRepository repository.AnalyticsPollRepository
	rotationRepo   repository.RotationRepository
}

func NewService(
	cfg *config.Config,
	integrator youtube.YouTubeIntegrator,
	testRepo repository.TitleTestRepository,
	variantRepo repository.VariantRepository,
	pollRepo repository.AnalyticsPollRepository,
	rotationRepo repository.RotationRepository,
) *Service {
	return &Service{
		cfg:            cfg,
		integrator:     integrator,
		testRepository: testRepo,
		variantRepo:    variantRepo,
		pollRepository: pollRepo,
		rotationRepo:   rotationRepo,
	}
}

// Rotate executa um ciclo de rotação do teste. O ciclo ativa a próxima
// variante na plataforma antes de persistir qualquer mudança local, então
// uma falha na plataforma deixa o estado local intacto e o próximo disparo
// do timer repete a tentativa.
func (s *Service) Rotate(ctx context.Context, testID string) (Outcome, error) {
	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return OutcomeSkipped, err
	}

	if test == nil {
		return OutcomeSkipped, errors.Wrapf(domain.ErrTestNotFound, "teste %s", testID)
	}

	// testes pendentes rotacionam: a primeira ativação é o que os torna
	// ativos
	if test.Status != domain.TestStatusActive && test.Status != domain.TestStatusPending {
		logrus.WithFields(logrus.Fields{
			"test_id": testID,
			"status":  test.Status,
		}).Debug("rotation: test is no longer rotatable, nothing to do")
		metrics.RotationsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	}

	now := time.Now()

	if test.Status == domain.TestStatusActive && test.EndDateReached(now) {
		return s.complete(ctx, test, now)
	}

	variants, err := s.variantRepo.ListByTestID(ctx, testID)
	if err != nil {
		return OutcomeSkipped, err
	}

	if len(variants) == 0 {
		return OutcomeSkipped, errors.Wrapf(domain.ErrVariantNotFound, "teste %s não tem variantes", testID)
	}

	nextIndex := 0
	if test.CurrentVariantIndex != nil {
		nextIndex = *test.CurrentVariantIndex + 1
	}

	if nextIndex >= len(variants) {
		return s.complete(ctx, test, now)
	}

	next := variants[nextIndex]

	record := &repository.RotationRecord{
		TestID:        testID,
		NextVariantID: next.ID,
		NextOrder:     next.Order,
		RotatedAt:     now,
	}

	if err := s.fillOutgoingVariant(ctx, test, record, now); err != nil {
		return OutcomeSkipped, err
	}

	if err := s.integrator.UpdateVideoTitle(ctx, test.ChannelID, test.VideoID, next.Title); err != nil {
		return s.handlePlatformFailure(ctx, test, err)
	}

	logID, err := utils.GenerateID()
	if err != nil {
		return OutcomeSkipped, errors.Wrap(err, "erro gerando id do log de rotação")
	}
	record.LogID = logID

	if err := s.rotationRepo.ApplyRotation(ctx, record); err != nil {
		if errors.Is(err, domain.ErrInvalidStatusTransition) {
			logrus.WithField("test_id", testID).
				Warn("rotation: test left rotatable state mid cycle, nothing applied")
			metrics.RotationsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
			return OutcomeSkipped, nil
		}
		return OutcomeSkipped, err
	}

	logrus.WithFields(logrus.Fields{
		"test_id":    testID,
		"variant_id": next.ID,
		"order":      next.Order,
		"title":      next.Title,
	}).Info("rotação aplicada")
	metrics.RotationsTotal.WithLabelValues(string(OutcomeAdvanced)).Inc()

	return OutcomeAdvanced, nil
}

// fillOutgoingVariant registra no record a duração e as métricas finais da
// variante que está saindo. Na primeira ativação não há variante anterior.
func (s *Service) fillOutgoingVariant(ctx context.Context, test *domain.TitleTest, record *repository.RotationRecord, now time.Time) error {
	if test.CurrentVariantIndex == nil {
		return nil
	}

	previous, err := s.variantRepo.GetActiveByTestID(ctx, test.ID)
	if err != nil {
		return err
	}

	if previous == nil {
		return nil
	}

	record.PreviousVariantID = &previous.ID
	if previous.ActivatedAt != nil {
		record.DurationMinutes = utils.MinutesBetween(*previous.ActivatedAt, now)
	}

	latestPoll, err := s.pollRepository.GetLatestByVariantID(ctx, previous.ID)
	if err != nil {
		return err
	}

	if latestPoll != nil {
		record.ViewsAtRotation = latestPoll.Views
		record.CTRAtRotation = latestPoll.CTR
	}

	return nil
}

func (s *Service) handlePlatformFailure(ctx context.Context, test *domain.TitleTest, err error) (Outcome, error) {
	if domain.IsReauthorizationRequired(err) {
		reason := domain.PauseReasonAuthRequired
		paused, pauseErr := s.testRepository.TransitionStatus(
			ctx,
			test.ID,
			[]domain.TestStatus{domain.TestStatusActive},
			domain.TestStatusPaused,
			&reason,
		)
		if pauseErr != nil {
			logrus.WithFields(logrus.Fields{
				"test_id": test.ID,
				"error":   pauseErr.Error(),
			}).Error("rotation: failed to auto pause test after credential revocation")
		}

		if paused {
			logrus.WithField("test_id", test.ID).Warn("teste pausado automaticamente, canal precisa reautorizar")
			metrics.TestsAutoPaused.Inc()
		}

		metrics.RotationsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, err
	}

	if domain.IsTransient(err) {
		logrus.WithFields(logrus.Fields{
			"test_id": test.ID,
			"error":   err.Error(),
		}).Warn("rotation: transient platform failure, state unchanged")
		metrics.RotationsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, err
	}

	metrics.RotationsTotal.WithLabelValues("failed").Inc()
	return OutcomeSkipped, err
}

// complete finaliza o teste: consolida os sumários das variantes que foram
// ativadas, seleciona o vencedor e aplica tudo em uma única transação.
func (s *Service) complete(ctx context.Context, test *domain.TitleTest, now time.Time) (Outcome, error) {
	summaries, err := s.buildSummaries(ctx, test, now)
	if err != nil {
		return OutcomeSkipped, err
	}

	record := &repository.CompletionRecord{
		TestID:      test.ID,
		CompletedAt: now,
		Summaries:   summaries,
	}

	if selected := winner.Select(test.WinnerMetric, summaries); selected != nil {
		record.WinnerVariantID = &selected.VariantID
	}

	if err := s.rotationRepo.ApplyCompletion(ctx, record); err != nil {
		// o teste foi cancelado ou pausado entre a checagem e a gravação,
		// a transação abortou sem aplicar nada
		if errors.Is(err, domain.ErrInvalidStatusTransition) {
			logrus.WithField("test_id", test.ID).Warn("rotation: test left active state before completion, nothing applied")
			metrics.RotationsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
			return OutcomeSkipped, nil
		}

		return OutcomeSkipped, err
	}

	logrus.WithFields(logrus.Fields{
		"test_id":   test.ID,
		"summaries": len(summaries),
		"winner":    record.WinnerVariantID,
	}).Info("teste completado")
	metrics.RotationsTotal.WithLabelValues(string(OutcomeCompleted)).Inc()

	return OutcomeCompleted, nil
}

func (s *Service) buildSummaries(ctx context.Context, test *domain.TitleTest, now time.Time) ([]*domain.VariantSummary, error) {
	variants, err := s.variantRepo.ListByTestID(ctx, test.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.VariantSummary, 0, len(variants))

	for _, variant := range variants {
		if variant.ActivatedAt == nil {
			continue
		}

		summaryID, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro gerando id do sumário")
		}

		summary := &domain.VariantSummary{
			ID:           summaryID,
			VariantID:    variant.ID,
			TestID:       test.ID,
			VariantOrder: variant.Order,
			Title:        variant.Title,
			CreatedAt:    now,
		}

		latestPoll, err := s.pollRepository.GetLatestByVariantID(ctx, variant.ID)
		if err != nil {
			return nil, err
		}

		if latestPoll != nil {
			summary.TotalViews = latestPoll.Views
			summary.TotalImpressions = latestPoll.Impressions
			summary.FinalCTR = latestPoll.CTR
			summary.FinalAverageViewDuration = latestPoll.AverageViewDuration
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
