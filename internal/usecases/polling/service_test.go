package polling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	integratormocks "github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/mocks"
	"github.com/titlelab/title-rotator-api/infrastructure/repository/mocks"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Polling.IntervalMinutes = 15
	cfg.Polling.IdleBackoffMinutes = 60
	return cfg
}

func activeVariant(id, testID string) *domain.Variant {
	activated := time.Now().Add(-30 * time.Minute)
	return &domain.Variant{
		ID:          id,
		TestID:      testID,
		Title:       "Título A",
		Order:       0,
		IsActive:    true,
		ActivatedAt: &activated,
	}
}

func activeTest(id string) *domain.TitleTest {
	return &domain.TitleTest{
		ID:        id,
		ChannelID: "chan01",
		VideoID:   "video01",
		Status:    domain.TestStatusActive,
	}
}

func TestService_Poll_ColetaERearma(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	integrator.EXPECT().GetVideoMetrics(gomock.Any(), "chan01", "video01", *variant.ActivatedAt).
		Return(&domain.VideoMetrics{Views: 800, Impressions: 12000, CTR: 6.67, AverageViewDuration: 145.2}, nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(&domain.AnalyticsPoll{
		VariantID: "var0", Views: 500, Impressions: 9000,
	}, nil)
	pollRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, poll *domain.AnalyticsPoll) error {
			assert.Equal(t, "var0", poll.VariantID)
			assert.Equal(t, int64(800), poll.Views)
			assert.Equal(t, 6.67, poll.CTR)
			return nil
		},
	)

	outcome, err := service.Poll(context.Background(), "var0")

	assert.NoError(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 15*time.Minute, outcome.NextDelay)
}

func TestService_Poll_MetricasParadasAplicamBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	integrator.EXPECT().GetVideoMetrics(gomock.Any(), "chan01", "video01", gomock.Any()).
		Return(&domain.VideoMetrics{Views: 500, Impressions: 9000, CTR: 5.56}, nil)
	pollRepo.EXPECT().GetLatestByVariantID(gomock.Any(), "var0").Return(&domain.AnalyticsPoll{
		VariantID: "var0", Views: 500, Impressions: 9000,
	}, nil)
	pollRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := service.Poll(context.Background(), "var0")

	assert.NoError(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 60*time.Minute, outcome.NextDelay)
}

func TestService_Poll_VarianteSuperadaRearmaEmIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")
	variant.IsActive = false

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	// nada é coletado nem gravado

	outcome, err := service.Poll(context.Background(), "var0")

	assert.NoError(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 60*time.Minute, outcome.NextDelay)
}

func TestService_Poll_TestePausadoRearmaEmIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")
	pausedTest := activeTest("test01")
	pausedTest.Status = domain.TestStatusPaused

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(pausedTest, nil)

	// o timer sobrevive à pausa: a retomada volta a coletar sem depender
	// de uma nova rotação
	outcome, err := service.Poll(context.Background(), "var0")

	assert.NoError(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 60*time.Minute, outcome.NextDelay)
}

func TestService_Poll_TesteEncerradoMataTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	for _, status := range []domain.TestStatus{domain.TestStatusCompleted, domain.TestStatusCancelled} {
		variant := activeVariant("var0", "test01")
		finished := activeTest("test01")
		finished.Status = status

		variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
		testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(finished, nil)

		outcome, err := service.Poll(context.Background(), "var0")

		assert.NoError(t, err)
		assert.False(t, outcome.Rearm)
	}
}

func TestService_Poll_FalhaTransientePulaObservacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	integrator.EXPECT().GetVideoMetrics(gomock.Any(), "chan01", "video01", gomock.Any()).
		Return(nil, domain.NewTransientPlatformError("reports.query", 503, assert.AnError))
	// nenhuma observação é gravada

	outcome, err := service.Poll(context.Background(), "var0")

	assert.Error(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 15*time.Minute, outcome.NextDelay)
}

func TestService_Poll_QuotaEsgotadaEsperaIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	integrator.EXPECT().GetVideoMetrics(gomock.Any(), "chan01", "video01", gomock.Any()).
		Return(nil, domain.ErrQuotaExceeded)

	outcome, err := service.Poll(context.Background(), "var0")

	assert.Error(t, err)
	assert.True(t, outcome.Rearm)
	assert.Equal(t, 60*time.Minute, outcome.NextDelay)
}

func TestService_Poll_CredencialRevogadaPausaTeste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testRepo := mocks.NewMockTitleTestRepository(ctrl)
	variantRepo := mocks.NewMockVariantRepository(ctrl)
	pollRepo := mocks.NewMockAnalyticsPollRepository(ctrl)
	integrator := integratormocks.NewMockYouTubeIntegrator(ctrl)

	service := NewService(newTestConfig(), integrator, testRepo, variantRepo, pollRepo)

	variant := activeVariant("var0", "test01")

	variantRepo.EXPECT().GetByID(gomock.Any(), "var0").Return(variant, nil)
	testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(activeTest("test01"), nil)
	integrator.EXPECT().GetVideoMetrics(gomock.Any(), "chan01", "video01", gomock.Any()).
		Return(nil, domain.ErrReauthorizationRequired)
	testRepo.EXPECT().TransitionStatus(
		gomock.Any(),
		"test01",
		[]domain.TestStatus{domain.TestStatusActive},
		domain.TestStatusPaused,
		gomock.Any(),
	).Return(true, nil)

	outcome, err := service.Poll(context.Background(), "var0")

	assert.Error(t, err)
	assert.False(t, outcome.Rearm)
}
