package managing

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/internal/usecases/winner"
	"github.com/titlelab/title-rotator-api/pkg/utils"
)

// TestScheduler é a visão que este serviço tem do agendador: armar e
// desarmar timers conforme o ciclo de vida do teste. Implementado pelo
// agendador de rotações e injetado na subida para evitar dependência
// circular.
type TestScheduler interface {
	ScheduleTest(test *domain.TitleTest) error
	CancelTest(testID string)
	TriggerManualRotation(testID string)
}

// TestManager cobre o ciclo de vida dos testes de título
type TestManager interface {
	CreateTest(ctx context.Context, req *domain.CreateTestRequest) (*domain.TestResponse, error)
	GetTest(ctx context.Context, testID string) (*domain.TestResponse, error)
	ListTests(ctx context.Context, statuses []domain.TestStatus) ([]*domain.TitleTest, error)
	PauseTest(ctx context.Context, testID string) error
	ResumeTest(ctx context.Context, testID string) error
	CancelTest(ctx context.Context, testID string) error
	TriggerRotation(ctx context.Context, testID string) error
	GetWinner(ctx context.Context, testID string) (*domain.WinnerResponse, error)
	ListRotationLogs(ctx context.Context, testID string) ([]*domain.RotationLog, error)
}

type Service struct {
	cfg             *config.Config
	validate        *validator.Validate
	scheduler       TestScheduler
	testRepository  repository.TitleTestRepository
	variantRepo     repository.VariantRepository
	channelRepo     repository.ChannelRepository
	summaryRepo     repository.VariantSummaryRepository
	rotationLogRepo repository.RotationLogRepository
}

func NewService(
	cfg *config.Config,
	scheduler TestScheduler,
	testRepo repository.TitleTestRepository,
	variantRepo repository.VariantRepository,
	channelRepo repository.ChannelRepository,
	summaryRepo repository.VariantSummaryRepository,
	rotationLogRepo repository.RotationLogRepository,
) *Service {
	return &Service{
		cfg:             cfg,
		validate:        validator.New(),
		scheduler:       scheduler,
		testRepository:  testRepo,
		variantRepo:     variantRepo,
		channelRepo:     channelRepo,
		summaryRepo:     summaryRepo,
		rotationLogRepo: rotationLogRepo,
	}
}

// CreateTest cria o teste com suas variantes e arma o timer de rotação.
// O teste nasce ativo e a primeira rotação, que ativa a primeira variante,
// dispara imediatamente pelo agendador.
func (s *Service) CreateTest(ctx context.Context, req *domain.CreateTestRequest) (*domain.TestResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	metric := domain.WinnerMetric(req.WinnerMetric)
	if !metric.IsValid() {
		return nil, errors.Errorf("métrica de vencedor inválida: %s", req.WinnerMetric)
	}

	channel, err := s.channelRepo.GetByID(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	if channel == nil {
		return nil, errors.Wrapf(domain.ErrChannelNotFound, "canal %s", req.ChannelID)
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, errors.Wrap(err, "data de término inválida, formato esperado 2006-01-02")
		}
		endDate = parsed
	}

	testID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro gerando id do teste")
	}

	now := time.Now()
	// o teste nasce pendente; a primeira rotação, disparada na hora pelo
	// agendador, é quem o ativa
	test := &domain.TitleTest{
		ID:                      testID,
		ChannelID:               req.ChannelID,
		VideoID:                 req.VideoID,
		Status:                  domain.TestStatusPending,
		RotationIntervalMinutes: req.RotationIntervalMinutes,
		WinnerMetric:            metric,
		StartDate:               now,
		EndDate:                 endDate,
		CreatedAt:               now,
	}

	variants := make([]*domain.Variant, 0, len(req.Titles))
	for order, title := range req.Titles {
		variantID, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro gerando id da variante")
		}

		variants = append(variants, &domain.Variant{
			ID:        variantID,
			TestID:    testID,
			Title:     title,
			Order:     order,
			CreatedAt: now,
		})
	}

	if err := s.testRepository.Create(ctx, test); err != nil {
		return nil, err
	}

	if err := s.variantRepo.CreateBatch(ctx, variants); err != nil {
		return nil, err
	}

	if err := s.scheduler.ScheduleTest(test); err != nil {
		logrus.WithFields(logrus.Fields{
			"test_id": testID,
			"error":   err.Error(),
		}).Error("tests: created but failed to arm rotation timer, sweep will pick it up")
	}

	logrus.WithFields(logrus.Fields{
		"test_id":  testID,
		"video_id": req.VideoID,
		"variants": len(variants),
		"interval": req.RotationIntervalMinutes,
	}).Info("teste de título criado")

	return &domain.TestResponse{Test: test, Variants: variants}, nil
}

func (s *Service) GetTest(ctx context.Context, testID string) (*domain.TestResponse, error) {
	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	if test == nil {
		return nil, errors.Wrapf(domain.ErrTestNotFound, "teste %s", testID)
	}

	variants, err := s.variantRepo.ListByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}

	return &domain.TestResponse{Test: test, Variants: variants}, nil
}

func (s *Service) ListTests(ctx context.Context, statuses []domain.TestStatus) ([]*domain.TitleTest, error) {
	return s.testRepository.ListByStatus(ctx, statuses)
}

// PauseTest suspende as rotações sem perder o progresso do ciclo
func (s *Service) PauseTest(ctx context.Context, testID string) error {
	reason := domain.PauseReasonUser
	ok, err := s.testRepository.TransitionStatus(
		ctx,
		testID,
		[]domain.TestStatus{domain.TestStatusActive},
		domain.TestStatusPaused,
		&reason,
	)
	if err != nil {
		return err
	}

	if !ok {
		return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s não está ativo", testID)
	}

	s.scheduler.CancelTest(testID)
	logrus.WithField("test_id", testID).Info("teste pausado")

	return nil
}

// ResumeTest retoma um teste pausado do ponto em que parou. Para pausas
// automáticas por credencial revogada, o canal precisa ter sido
// reautorizado antes, senão a próxima rotação pausa de novo.
func (s *Service) ResumeTest(ctx context.Context, testID string) error {
	ok, err := s.testRepository.TransitionStatus(
		ctx,
		testID,
		[]domain.TestStatus{domain.TestStatusPaused},
		domain.TestStatusActive,
		nil,
	)
	if err != nil {
		return err
	}

	if !ok {
		return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s não está pausado", testID)
	}

	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return err
	}

	if err := s.scheduler.ScheduleTest(test); err != nil {
		logrus.WithFields(logrus.Fields{
			"test_id": testID,
			"error":   err.Error(),
		}).Error("tests: resumed but failed to arm rotation timer, sweep will pick it up")
	}

	logrus.WithField("test_id", testID).Info("teste retomado")

	return nil
}

// CancelTest encerra o teste sem selecionar vencedor
func (s *Service) CancelTest(ctx context.Context, testID string) error {
	ok, err := s.testRepository.TransitionStatus(
		ctx,
		testID,
		[]domain.TestStatus{domain.TestStatusPending, domain.TestStatusActive, domain.TestStatusPaused},
		domain.TestStatusCancelled,
		nil,
	)
	if err != nil {
		return err
	}

	if !ok {
		return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s já está encerrado", testID)
	}

	s.scheduler.CancelTest(testID)
	logrus.WithField("test_id", testID).Info("teste cancelado")

	return nil
}

// TriggerRotation dispara uma rotação fora do timer. A execução é
// assíncrona e serializada com o timer pelo agendador, então rotação dupla
// não acontece.
func (s *Service) TriggerRotation(ctx context.Context, testID string) error {
	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return err
	}

	if test == nil {
		return errors.Wrapf(domain.ErrTestNotFound, "teste %s", testID)
	}

	if test.Status != domain.TestStatusActive && test.Status != domain.TestStatusPending {
		return errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s não pode rotacionar", testID)
	}

	s.scheduler.TriggerManualRotation(testID)

	return nil
}

// GetWinner devolve o vencedor e os sumários de um teste completado
func (s *Service) GetWinner(ctx context.Context, testID string) (*domain.WinnerResponse, error) {
	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	if test == nil {
		return nil, errors.Wrapf(domain.ErrTestNotFound, "teste %s", testID)
	}

	if test.Status != domain.TestStatusCompleted {
		return nil, errors.Wrapf(domain.ErrInvalidStatusTransition, "teste %s ainda não foi completado", testID)
	}

	summaries, err := s.summaryRepo.ListByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}

	response := &domain.WinnerResponse{
		TestID:     testID,
		Metric:     test.WinnerMetric,
		Summaries:  summaries,
		Confidence: winner.Confidence(summaries),
	}

	if test.WinnerVariantID != nil {
		for _, summary := range summaries {
			if summary.VariantID == *test.WinnerVariantID {
				response.Winner = summary
				break
			}
		}
	}

	return response, nil
}

func (s *Service) ListRotationLogs(ctx context.Context, testID string) ([]*domain.RotationLog, error) {
	test, err := s.testRepository.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	if test == nil {
		return nil, errors.Wrapf(domain.ErrTestNotFound, "teste %s", testID)
	}

	return s.rotationLogRepo.ListByTestID(ctx, testID)
}
