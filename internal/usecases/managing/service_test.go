package managing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/titlelab/title-rotator-api/infrastructure/repository/mocks"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

// fakeScheduler registra as chamadas do serviço ao agendador
type fakeScheduler struct {
	scheduled []string
	cancelled []string
	triggered []string
	failNext  error
}

func (f *fakeScheduler) ScheduleTest(test *domain.TitleTest) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.scheduled = append(f.scheduled, test.ID)
	return nil
}

func (f *fakeScheduler) CancelTest(testID string) {
	f.cancelled = append(f.cancelled, testID)
}

func (f *fakeScheduler) TriggerManualRotation(testID string) {
	f.triggered = append(f.triggered, testID)
}

type serviceMocks struct {
	testRepo        *mocks.MockTitleTestRepository
	variantRepo     *mocks.MockVariantRepository
	channelRepo     *mocks.MockChannelRepository
	summaryRepo     *mocks.MockVariantSummaryRepository
	rotationLogRepo *mocks.MockRotationLogRepository
	scheduler       *fakeScheduler
}

func newServiceWithMocks(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		testRepo:        mocks.NewMockTitleTestRepository(ctrl),
		variantRepo:     mocks.NewMockVariantRepository(ctrl),
		channelRepo:     mocks.NewMockChannelRepository(ctrl),
		summaryRepo:     mocks.NewMockVariantSummaryRepository(ctrl),
		rotationLogRepo: mocks.NewMockRotationLogRepository(ctrl),
		scheduler:       &fakeScheduler{},
	}

	service := NewService(
		&config.Config{},
		m.scheduler,
		m.testRepo,
		m.variantRepo,
		m.channelRepo,
		m.summaryRepo,
		m.rotationLogRepo,
	)

	return service, m
}

func validRequest() *domain.CreateTestRequest {
	return &domain.CreateTestRequest{
		ChannelID:               "chan01",
		VideoID:                 "video01",
		Titles:                  []string{"Título A", "Título B", "Título C"},
		RotationIntervalMinutes: 60,
		WinnerMetric:            "CTR",
	}
}

func TestService_CreateTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.channelRepo.EXPECT().GetByID(gomock.Any(), "chan01").Return(&domain.Channel{ID: "chan01"}, nil)
	m.testRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, test *domain.TitleTest) error {
			// o teste nasce pendente, a primeira rotação o ativa
			assert.Equal(t, domain.TestStatusPending, test.Status)
			assert.Nil(t, test.CurrentVariantIndex)
			return nil
		},
	)
	m.variantRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, variants []*domain.Variant) error {
			assert.Len(t, variants, 3)
			for i, variant := range variants {
				assert.Equal(t, i, variant.Order)
				assert.False(t, variant.IsActive)
			}
			return nil
		},
	)

	response, err := service.CreateTest(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, response)
	assert.Len(t, response.Variants, 3)
	assert.Equal(t, []string{response.Test.ID}, m.scheduler.scheduled)
}

func TestService_CreateTest_Validacao(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.CreateTestRequest)
	}{
		{
			name:   "Menos de duas variantes",
			mutate: func(req *domain.CreateTestRequest) { req.Titles = []string{"Único"} },
		},
		{
			name: "Mais de cinco variantes",
			mutate: func(req *domain.CreateTestRequest) {
				req.Titles = []string{"A", "B", "C", "D", "E", "F"}
			},
		},
		{
			name:   "Intervalo zero",
			mutate: func(req *domain.CreateTestRequest) { req.RotationIntervalMinutes = 0 },
		},
		{
			name:   "Métrica desconhecida",
			mutate: func(req *domain.CreateTestRequest) { req.WinnerMetric = "LIKES" },
		},
		{
			name:   "Vídeo ausente",
			mutate: func(req *domain.CreateTestRequest) { req.VideoID = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newServiceWithMocks(ctrl)

			req := validRequest()
			tt.mutate(req)

			_, err := service.CreateTest(context.Background(), req)

			assert.Error(t, err)
			assert.Empty(t, m.scheduler.scheduled)
		})
	}
}

func TestService_CreateTest_CanalInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.channelRepo.EXPECT().GetByID(gomock.Any(), "chan01").Return(nil, nil)

	_, err := service.CreateTest(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestService_PauseTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.testRepo.EXPECT().TransitionStatus(
		gomock.Any(),
		"test01",
		[]domain.TestStatus{domain.TestStatusActive},
		domain.TestStatusPaused,
		gomock.Any(),
	).Return(true, nil)

	assert.NoError(t, service.PauseTest(context.Background(), "test01"))
	assert.Equal(t, []string{"test01"}, m.scheduler.cancelled)
}

func TestService_PauseTest_TransicaoRejeitada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.testRepo.EXPECT().TransitionStatus(
		gomock.Any(), "test01", gomock.Any(), domain.TestStatusPaused, gomock.Any(),
	).Return(false, nil)

	err := service.PauseTest(context.Background(), "test01")

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Empty(t, m.scheduler.cancelled)
}

func TestService_ResumeTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	index := 1
	resumed := &domain.TitleTest{
		ID:                      "test01",
		Status:                  domain.TestStatusActive,
		RotationIntervalMinutes: 30,
		CurrentVariantIndex:     &index,
	}

	m.testRepo.EXPECT().TransitionStatus(
		gomock.Any(),
		"test01",
		[]domain.TestStatus{domain.TestStatusPaused},
		domain.TestStatusActive,
		nil,
	).Return(true, nil)
	m.testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(resumed, nil)

	assert.NoError(t, service.ResumeTest(context.Background(), "test01"))
	assert.Equal(t, []string{"test01"}, m.scheduler.scheduled)
}

func TestService_CancelTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.testRepo.EXPECT().TransitionStatus(
		gomock.Any(),
		"test01",
		[]domain.TestStatus{domain.TestStatusPending, domain.TestStatusActive, domain.TestStatusPaused},
		domain.TestStatusCancelled,
		nil,
	).Return(true, nil)

	assert.NoError(t, service.CancelTest(context.Background(), "test01"))
	assert.Equal(t, []string{"test01"}, m.scheduler.cancelled)
}

func TestService_TriggerRotation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Teste ativo dispara", func(t *testing.T) {
		m.testRepo.EXPECT().GetByID(gomock.Any(), "test01").
			Return(&domain.TitleTest{ID: "test01", Status: domain.TestStatusActive}, nil)

		assert.NoError(t, service.TriggerRotation(context.Background(), "test01"))
		assert.Equal(t, []string{"test01"}, m.scheduler.triggered)
	})

	t.Run("Teste pendente dispara a primeira ativação", func(t *testing.T) {
		m.testRepo.EXPECT().GetByID(gomock.Any(), "test03").
			Return(&domain.TitleTest{ID: "test03", Status: domain.TestStatusPending}, nil)

		assert.NoError(t, service.TriggerRotation(context.Background(), "test03"))
		assert.Contains(t, m.scheduler.triggered, "test03")
	})

	t.Run("Teste pausado é rejeitado", func(t *testing.T) {
		m.testRepo.EXPECT().GetByID(gomock.Any(), "test02").
			Return(&domain.TitleTest{ID: "test02", Status: domain.TestStatusPaused}, nil)

		err := service.TriggerRotation(context.Background(), "test02")
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	})
}

func TestService_GetWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	winnerID := "var1"
	completedAt := time.Now()
	completed := &domain.TitleTest{
		ID:              "test01",
		Status:          domain.TestStatusCompleted,
		WinnerMetric:    domain.WinnerMetricCTR,
		WinnerVariantID: &winnerID,
		CompletedAt:     &completedAt,
	}
	summaries := []*domain.VariantSummary{
		{VariantID: "var0", VariantOrder: 0, TotalViews: 500, TotalImpressions: 10000, FinalCTR: 5.0},
		{VariantID: "var1", VariantOrder: 1, TotalViews: 900, TotalImpressions: 10000, FinalCTR: 9.0},
	}

	m.testRepo.EXPECT().GetByID(gomock.Any(), "test01").Return(completed, nil)
	m.summaryRepo.EXPECT().ListByTestID(gomock.Any(), "test01").Return(summaries, nil)

	response, err := service.GetWinner(context.Background(), "test01")

	assert.NoError(t, err)
	if assert.NotNil(t, response.Winner) {
		assert.Equal(t, "var1", response.Winner.VariantID)
	}
	assert.Equal(t, domain.WinnerMetricCTR, response.Metric)
	assert.Len(t, response.Summaries, 2)
	assert.NotNil(t, response.Confidence)
}

func TestService_GetWinner_TesteNaoCompletado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	m.testRepo.EXPECT().GetByID(gomock.Any(), "test01").
		Return(&domain.TitleTest{ID: "test01", Status: domain.TestStatusActive}, nil)

	_, err := service.GetWinner(context.Background(), "test01")

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}
