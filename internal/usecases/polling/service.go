package polling

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube"
	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/metrics"
	"github.com/titlelab/title-rotator-api/pkg/utils"
)

// Outcome diz ao agendador o que fazer depois de um poll: rearmar o timer
// da variante (e com qual atraso) ou deixá-lo morrer.
type Outcome struct {
	Rearm     bool
	NextDelay time.Duration
}

// Poller coleta uma observação de métricas da variante ativa
type Poller interface {
	Poll(ctx context.Context, variantID string) (Outcome, error)
}

type Service struct {
	cfg            *config.Config
	integrator     youtube.YouTubeIntegrator
	testRepository repository.TitleTestRepository
	variantRepo    repository.VariantRepository
	pollRepository repository.AnalyticsPollRepository
}

func NewService(
	cfg *config.Config,
	integrator youtube.YouTubeIntegrator,
	testRepo repository.TitleTestRepository,
	variantRepo repository.VariantRepository,
	pollRepo repository.AnalyticsPollRepository,
) *Service {
	return &Service{
		cfg:            cfg,
		integrator:     integrator,
		testRepository: testRepo,
		variantRepo:    variantRepo,
		pollRepository: pollRepo,
	}
}

// Poll coleta as métricas acumuladas da variante desde a ativação e grava
// uma observação na série. O retorno é uma função de transição: variante
// superada ou teste fora do ar rearmam no backoff de idle sem gastar quota,
// e só testes encerrados deixam o timer morrer de vez.
func (s *Service) Poll(ctx context.Context, variantID string) (Outcome, error) {
	stop := Outcome{Rearm: false}
	idle := Outcome{Rearm: true, NextDelay: time.Duration(s.cfg.Polling.IdleBackoffMinutes) * time.Minute}

	variant, err := s.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return stop, err
	}

	if variant == nil {
		return stop, errors.Wrapf(domain.ErrVariantNotFound, "variante %s", variantID)
	}

	test, err := s.testRepository.GetByID(ctx, variant.TestID)
	if err != nil {
		return stop, err
	}

	if test == nil || test.Status.IsTerminal() {
		logrus.WithField("variant_id", variantID).Debug("polling: test is over, letting timer die")
		metrics.PollsTotal.WithLabelValues("stopped").Inc()
		return stop, nil
	}

	if test.Status != domain.TestStatusActive || !variant.IsActive || variant.ActivatedAt == nil {
		logrus.WithFields(logrus.Fields{
			"variant_id":  variantID,
			"test_status": test.Status,
		}).Debug("polling: nothing to collect, rearming at idle backoff")
		metrics.PollsTotal.WithLabelValues("idle").Inc()
		return idle, nil
	}

	videoMetrics, err := s.integrator.GetVideoMetrics(ctx, test.ChannelID, test.VideoID, *variant.ActivatedAt)
	if err != nil {
		return s.handlePlatformFailure(ctx, test, err)
	}

	pollID, err := utils.GenerateID()
	if err != nil {
		return stop, errors.Wrap(err, "erro gerando id do poll")
	}

	observation := &domain.AnalyticsPoll{
		ID:                  pollID,
		VariantID:           variantID,
		PolledAt:            time.Now(),
		Views:               videoMetrics.Views,
		Impressions:         videoMetrics.Impressions,
		CTR:                 videoMetrics.CTR,
		AverageViewDuration: videoMetrics.AverageViewDuration,
	}

	delay, err := s.nextDelay(ctx, variantID, observation)
	if err != nil {
		return stop, err
	}

	if err := s.pollRepository.Create(ctx, observation); err != nil {
		return stop, err
	}

	logrus.WithFields(logrus.Fields{
		"variant_id":  variantID,
		"views":       observation.Views,
		"impressions": observation.Impressions,
		"ctr":         observation.CTR,
	}).Debug("observação de métricas gravada")
	metrics.PollsTotal.WithLabelValues("collected").Inc()

	return Outcome{Rearm: true, NextDelay: delay}, nil
}

// nextDelay aplica backoff quando o vídeo está parado: se a observação não
// mudou em relação à anterior, o próximo poll espera o intervalo de idle.
func (s *Service) nextDelay(ctx context.Context, variantID string, observation *domain.AnalyticsPoll) (time.Duration, error) {
	interval := time.Duration(s.cfg.Polling.IntervalMinutes) * time.Minute
	idle := time.Duration(s.cfg.Polling.IdleBackoffMinutes) * time.Minute

	latest, err := s.pollRepository.GetLatestByVariantID(ctx, variantID)
	if err != nil {
		return 0, err
	}

	if latest != nil && latest.Views == observation.Views && latest.Impressions == observation.Impressions {
		return idle, nil
	}

	return interval, nil
}

// handlePlatformFailure decide o destino do timer depois de uma falha da
// plataforma. Falha transiente pula a observação e mantém o timer; quota
// esgotada espera o intervalo de idle; credencial revogada pausa o teste e
// mata o timer.
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
			}).Error("polling: failed to auto pause test after credential revocation")
		}

		if paused {
			logrus.WithField("test_id", test.ID).Warn("teste pausado automaticamente, canal precisa reautorizar")
			metrics.TestsAutoPaused.Inc()
		}

		metrics.PollsTotal.WithLabelValues("auth_error").Inc()
		return Outcome{Rearm: false}, err
	}

	interval := time.Duration(s.cfg.Polling.IntervalMinutes) * time.Minute

	if errors.Is(err, domain.ErrQuotaExceeded) {
		metrics.PollsTotal.WithLabelValues("quota_exceeded").Inc()
		return Outcome{Rearm: true, NextDelay: time.Duration(s.cfg.Polling.IdleBackoffMinutes) * time.Minute}, err
	}

	if domain.IsTransient(err) {
		logrus.WithFields(logrus.Fields{
			"test_id": test.ID,
			"error":   err.Error(),
		}).Warn("polling: transient platform failure, observation skipped")
		metrics.PollsTotal.WithLabelValues("skipped").Inc()
		return Outcome{Rearm: true, NextDelay: interval}, err
	}

	metrics.PollsTotal.WithLabelValues("failed").Inc()
	return Outcome{Rearm: false}, err
}
