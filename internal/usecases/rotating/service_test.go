package rotating

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	integratormocks "github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/mocks"
	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/infrastructure/repository/mocks"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

func newTestConfig() *config.Config {
	return &config.Config{}
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func activeTest(id string, currentIndex *int) *domain.TitleTest {
	return &domain.TitleTest{
		ID:                      id,
		ChannelID:               "chan01",
		VideoID:                 "video01",
		Status:                  domain.TestStatusActive,
		RotationIntervalMinutes: 60,
		WinnerMetric:            domain.WinnerMetricCTR,
		StartDate:               time.Now().Add(-2 * time.Hour),
		CurrentVariantIndex:     currentIndex,
	}
}

func testVariants(testID string) []*domain.Variant {
	activated := time.Now().Add(-1 * time.Hour)
	return []*domain.Variant{
		{ID: "var0", TestID: testID, Title: "Título A", Order: 0, IsActive: true, ActivatedAt: &activated},
		{ID: "var1", TestID: testID, Title: "Título B", Order: 1},
		{ID: "var2", TestID: testID, Title: "Título C", Order: 2},
	}
}

func TestService_Rotate_PrimeiraAtivacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", nil)
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1},
	}

	// o teste recém-criado ainda está pendente: a primeira ativação é a
	// transição que o torna ativo
	test.Status = domain.TestStatusPending

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	integrator.EXPECT().UpdateVideoTitle(gomock.Any(), "chan01", "video01", "Título A").Return(nil)
	rotationRepo.EXPECT().ApplyRotation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *repository.RotationRecord) error {
			assert.Equal(t, "var0", record.NextVariantID)
			assert.Equal(t, 0, record.NextOrder)
			assert.Nil(t, record.PreviousVariantID)
			assert.Zero(t, record.DurationMinutes)
			return nil
		},
	)

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, outcome)
}

func TestService_Rotate_AvancoComVarianteAnterior(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", intPtr(0))
	variants := testVariants("test01")

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	variantRepo.EXPECT().GetActiveByTestID(gomock.Any(), "test01").Return(variants[0], nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(&domain.AnalyticsPoll{
		VariantID:   "var0",
		Views:       1200,
		Impressions: 20000,
		CTR:         6.0,
	}, nil)
	integrator.EXPECT().UpdateVideoTitle(gomock.Any(), "chan01", "video01", "Título B").Return(nil)
	rotationRepo.EXPECT().ApplyRotation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *repository.RotationRecord) error {
			assert.Equal(t, "var1", record.NextVariantID)
			assert.Equal(t, "var0", *record.PreviousVariantID)
			assert.Equal(t, int64(1200), record.ViewsAtRotation)
			assert.Equal(t, 6.0, record.CTRAtRotation)
			assert.InDelta(t, 60, record.DurationMinutes, 1)
			return nil
		},
	)

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, outcome)
}

func TestService_Rotate_CicloCompletoFinalizaTeste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	activatedA := time.Now().Add(-3 * time.Hour)
	activatedB := time.Now().Add(-1 * time.Hour)
	test := activeTest("test01", intPtr(1))
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0, ActivatedAt: &activatedA},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1, IsActive: true, ActivatedAt: &activatedB},
	}

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	// a primeira listagem decide que o ciclo acabou, a segunda monta os sumários
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil).Times(2)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(&domain.AnalyticsPoll{
		VariantID: "var0", Views: 500, Impressions: 10000, CTR: 5.0,
	}, nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var1").Return(&domain.AnalyticsPoll{
		VariantID: "var1", Views: 900, Impressions: 10000, CTR: 9.0,
	}, nil)
	rotationRepo.EXPECT().ApplyCompletion(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *repository.CompletionRecord) error {
			assert.Len(t, record.Summaries, 2)
			if assert.NotNil(t, record.WinnerVariantID) {
				assert.Equal(t, "var1", *record.WinnerVariantID)
			}
			for _, summary := range record.Summaries {
				assert.Equal(t, record.CompletedAt, summary.CreatedAt)
			}
			return nil
		},
	)

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
}

func TestService_Rotate_CancelamentoConcorrenteAbortaFinalizacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	activated := time.Now().Add(-1 * time.Hour)
	test := activeTest("test01", intPtr(1))
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0, ActivatedAt: &activated},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1, IsActive: true, ActivatedAt: &activated},
	}

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil).Times(2)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	// um cancelamento do usuário tirou o teste de ACTIVE entre a checagem
	// do executor e a transação, que abortou sem gravar sumário algum
	rotationRepo.EXPECT().ApplyCompletion(gomock.Any(), gomock.Any()).
		Return(errors.Wrapf(domain.ErrInvalidStatusTransition, "teste test01 não está mais ativo"))

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestService_Rotate_CancelamentoConcorrenteAbortaAvanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", intPtr(0))
	variants := testVariants("test01")

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	variantRepo.EXPECT().GetActiveByTestID(gomock.Any(), "test01").Return(variants[0], nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(nil, nil)
	integrator.EXPECT().UpdateVideoTitle(gomock.Any(), "chan01", "video01", "Título B").Return(nil)

	// o teste saiu de PENDING/ACTIVE entre a checagem do executor e a
	// transação, que abortou sem tocar em variante ou índice
	rotationRepo.EXPECT().ApplyRotation(gomock.Any(), gomock.Any()).
		Return(errors.Wrapf(domain.ErrInvalidStatusTransition, "teste test01 não pode mais rotacionar"))

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestService_Rotate_FalhaTransienteNaoMudaEstado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", nil)
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1},
	}

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	integrator.EXPECT().UpdateVideoTitle(gomock.Any(), "chan01", "video01", "Título A").
		Return(domain.NewTransientPlatformError("videos.update", 503, assert.AnError))
	// ApplyRotation não pode ser chamado: falha na plataforma deixa tudo intacto

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.Error(t, err)
	assert.True(t, domain.IsTransient(err))
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestService_Rotate_CredencialRevogadaPausaTeste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", nil)
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1},
	}

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	integrator.EXPECT().UpdateVideoTitle(gomock.Any(), "chan01", "video01", "Título A").
		Return(domain.ErrReauthorizationRequired)
	testRepo.EXPECT().TransitionStatus(
		gomock.Any(),
		"test01",
		[]domain.TestStatus{domain.TestStatusActive},
		domain.TestStatusPaused,
		gomock.Any(),
	).DoAndReturn(func(_ context.Context, _ string, _ []domain.TestStatus, _ domain.TestStatus, reason *domain.PauseReason) (bool, error) {
		if assert.NotNil(t, reason) {
			assert.Equal(t, domain.PauseReasonAuthRequired, *reason)
		}
		return true, nil
	})

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.Error(t, err)
	assert.True(t, domain.IsReauthorizationRequired(err))
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestService_Rotate_TesteNaoAtivo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	test := activeTest("test01", nil)
	test.Status = domain.TestStatusPaused

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestService_Rotate_DataLimiteFinalizaAntesDoCiclo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	activated := time.Now().Add(-2 * time.Hour)
	test := activeTest("test01", intPtr(0))
	test.EndDate = timePtr(time.Now().Add(-10 * time.Minute))
	variants := []*domain.Variant{
		{ID: "var0", TestID: "test01", Title: "Título A", Order: 0, IsActive: true, ActivatedAt: &activated},
		{ID: "var1", TestID: "test01", Title: "Título B", Order: 1},
	}

	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(test, nil)
	variantRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(variants, nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(nil, nil)
	rotationRepo.EXPECT().ApplyCompletion(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *repository.CompletionRecord) error {
			// só a variante ativada entra no sumário, mesmo sem poll
			assert.Len(t, record.Summaries, 1)
			assert.Equal(t, "var0", record.Summaries[0].VariantID)
			return nil
		},
	)

	outcome, err := service.Rotate(context.Background(), "test01")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
}

func TestService_Rotate_TesteInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	rotationRepo := mocks.NewMockRotationRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo, rotationRepo)

	testRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	outcome, err := service.Rotate(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrTestNotFound)
	assert.Equal(t, OutcomeSkipped, outcome)
}
