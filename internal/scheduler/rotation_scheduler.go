package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/internal/usecases/polling"
	"github.com/titlelab/title-rotator-api/internal/usecases/rotating"
	"github.com/titlelab/title-rotator-api/pkg/metrics"
)

const (
	rotationTagPrefix = "rotation:"
	pollTagPrefix     = "poll:"

	rotationTimeout = 2 * time.Minute
	pollTimeout     = 1 * time.Minute
)

// SchedulerStatus é o retrato do agendador exposto pela API
type SchedulerStatus struct {
	Enabled              bool       `json:"enabled"`
	ActiveRotationTimers int        `json:"active_rotation_timers"`
	ActivePollTimers     int        `json:"active_poll_timers"`
	LastSweepStartedAt   *time.Time `json:"last_sweep_started_at,omitempty"`
	LastSweepCompletedAt *time.Time `json:"last_sweep_completed_at,omitempty"`
}

// RotationSchedulerService é a única autoridade de agendamento do motor:
// arma um timer recorrente de rotação por teste ativo e timers one-shot de
// poll por variante ativa. Toda criação e remoção de timer passa por aqui.
type RotationSchedulerService struct {
	scheduler   *gocron.Scheduler
	cfg         *config.Config
	rotator     rotating.Rotator
	poller      polling.Poller
	testRepo    repository.TitleTestRepository
	variantRepo repository.VariantRepository

	// um mutex por teste serializa timer, disparo manual e sweep
	testLocks sync.Map

	statusMutex          sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
}

func NewRotationSchedulerService(
	cfg *config.Config,
	rotator rotating.Rotator,
	poller polling.Poller,
	testRepo repository.TitleTestRepository,
	variantRepo repository.VariantRepository,
) *RotationSchedulerService {
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SetMaxConcurrentJobs(cfg.Rotation.MaxConcurrentJobs, gocron.WaitMode)

	logrus.WithFields(logrus.Fields{
		"sweep_cron":          cfg.Rotation.SweepCronSchedule,
		"max_concurrent_jobs": cfg.Rotation.MaxConcurrentJobs,
		"scheduler_enabled":   cfg.Rotation.SchedulerEnabled,
	}).Info("Configuração do agendador de rotações carregada")

	return &RotationSchedulerService{
		scheduler:   scheduler,
		cfg:         cfg,
		rotator:     rotator,
		poller:      poller,
		testRepo:    testRepo,
		variantRepo: variantRepo,
	}
}

// Start sobe o agendador, rearma os timers dos testes ativos que estavam
// no banco e agenda o sweep periódico de reconciliação.
func (s *RotationSchedulerService) Start(ctx context.Context) error {
	if !s.cfg.Rotation.SchedulerEnabled {
		logrus.Info("Agendador de rotações desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.Rotation.SweepCronSchedule).Info("Iniciando agendador de rotações")

	_, err := s.scheduler.Cron(s.cfg.Rotation.SweepCronSchedule).Do(func() {
		s.sweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sweep de reconciliação: %w", err)
	}

	s.scheduler.StartAsync()

	// reconciliação de boot: rearma timers perdidos no restart
	s.sweep()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de rotações")
		s.scheduler.Stop()
	}()

	return nil
}

// ScheduleTest arma o timer recorrente de rotação do teste. Idempotente:
// um timer já armado para o mesmo teste é substituído, nunca duplicado.
// Testes que ainda não ativaram variante alguma rotacionam imediatamente,
// os demais esperam o intervalo cheio.
func (s *RotationSchedulerService) ScheduleTest(test *domain.TitleTest) error {
	tag := rotationTagPrefix + test.ID
	_ = s.scheduler.RemoveByTag(tag)

	interval := time.Duration(test.RotationIntervalMinutes) * time.Minute
	testID := test.ID

	job := s.scheduler.Every(interval).Tag(tag)
	if test.CurrentVariantIndex == nil {
		job = job.StartImmediately()
	} else {
		job = job.StartAt(time.Now().Add(interval))
	}

	if _, err := job.Do(func() {
		s.runRotation(testID)
	}); err != nil {
		return fmt.Errorf("erro ao armar timer de rotação do teste %s: %w", testID, err)
	}

	// um teste com variante ativa precisa voltar a coletar métricas,
	// senão a retomada de pausa fica sem telemetria até a próxima rotação
	if test.CurrentVariantIndex != nil {
		s.ensurePollTimer(testID)
	}

	logrus.WithFields(logrus.Fields{
		"test_id":  testID,
		"interval": interval.String(),
	}).Info("Timer de rotação armado")
	s.updateTimerGauge()

	return nil
}

// ensurePollTimer rearma o poll da variante ativa do teste quando o timer
// não existe mais (retomada de pausa, restart do processo). Timers já
// armados não são mexidos.
func (s *RotationSchedulerService) ensurePollTimer(testID string) {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	variant, err := s.variantRepo.GetActiveByTestID(ctx, testID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"test_id": testID,
			"error":   err.Error(),
		}).Error("scheduler: failed to load active variant to rearm poll timer")
		return
	}

	if variant == nil || s.hasPollTimer(variant.ID) {
		return
	}

	logrus.WithFields(logrus.Fields{
		"test_id":    testID,
		"variant_id": variant.ID,
	}).Info("Timer de poll da variante ativa rearmado")
	s.SchedulePoll(variant.ID, time.Duration(s.cfg.Polling.IntervalMinutes)*time.Minute)
}

// CancelTest desarma o timer de rotação do teste e o poll da variante
// ativa, se houver. Seguro chamar para testes sem timer armado.
func (s *RotationSchedulerService) CancelTest(testID string) {
	_ = s.scheduler.RemoveByTag(rotationTagPrefix + testID)

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	if variant, err := s.variantRepo.GetActiveByTestID(ctx, testID); err == nil && variant != nil {
		_ = s.scheduler.RemoveByTag(pollTagPrefix + variant.ID)
	}

	logrus.WithField("test_id", testID).Info("Timers do teste desarmados")
	s.updateTimerGauge()
}

// TriggerManualRotation dispara uma rotação fora do ciclo do timer. A
// execução compartilha o mutex do teste com o timer, então disparo manual
// e disparo agendado nunca rodam ao mesmo tempo para o mesmo teste.
func (s *RotationSchedulerService) TriggerManualRotation(testID string) {
	go s.runRotation(testID)
}

// SchedulePoll arma um timer one-shot de coleta de métricas da variante
func (s *RotationSchedulerService) SchedulePoll(variantID string, delay time.Duration) {
	tag := pollTagPrefix + variantID
	_ = s.scheduler.RemoveByTag(tag)

	_, err := s.scheduler.
		Every(delay).
		LimitRunsTo(1).
		StartAt(time.Now().Add(delay)).
		Tag(tag).
		Do(func() {
			s.runPoll(variantID)
		})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"variant_id": variantID,
			"error":      err.Error(),
		}).Error("scheduler: failed to arm poll timer")
		return
	}

	s.updateTimerGauge()
}

// GetStatus devolve o retrato corrente dos timers armados
func (s *RotationSchedulerService) GetStatus() *SchedulerStatus {
	status := &SchedulerStatus{
		Enabled: s.cfg.Rotation.SchedulerEnabled,
	}

	for _, job := range s.scheduler.Jobs() {
		for _, tag := range job.Tags() {
			if strings.HasPrefix(tag, rotationTagPrefix) {
				status.ActiveRotationTimers++
			}
			if strings.HasPrefix(tag, pollTagPrefix) {
				status.ActivePollTimers++
			}
		}
	}

	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	if !s.lastSweepStartedAt.IsZero() {
		startedAt := s.lastSweepStartedAt
		status.LastSweepStartedAt = &startedAt
	}
	if !s.lastSweepCompletedAt.IsZero() {
		completedAt := s.lastSweepCompletedAt
		status.LastSweepCompletedAt = &completedAt
	}

	return status
}

func (s *RotationSchedulerService) runRotation(testID string) {
	lock := s.testLock(testID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), rotationTimeout)
	defer cancel()

	outcome, err := s.rotator.Rotate(ctx, testID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"test_id": testID,
			"outcome": outcome,
			"error":   err.Error(),
		}).Warn("scheduler: rotation cycle finished with error")
	}

	switch {
	case outcome == rotating.OutcomeAdvanced:
		s.armPollForActiveVariant(ctx, testID)

	case outcome == rotating.OutcomeCompleted:
		s.CancelTest(testID)

	case err != nil && domain.IsReauthorizationRequired(err):
		// o teste foi pausado automaticamente, os timers morrem junto
		s.CancelTest(testID)

	case outcome == rotating.OutcomeSkipped && err == nil:
		// teste não está mais ativo, timer órfão
		s.CancelTest(testID)
	}
}

func (s *RotationSchedulerService) armPollForActiveVariant(ctx context.Context, testID string) {
	variant, err := s.variantRepo.GetActiveByTestID(ctx, testID)
	if err != nil || variant == nil {
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"test_id": testID,
				"error":   err.Error(),
			}).Error("scheduler: failed to load active variant to arm poll timer")
		}
		return
	}

	s.SchedulePoll(variant.ID, time.Duration(s.cfg.Polling.IntervalMinutes)*time.Minute)
}

func (s *RotationSchedulerService) runPoll(variantID string) {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	outcome, err := s.poller.Poll(ctx, variantID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"variant_id": variantID,
			"rearm":      outcome.Rearm,
			"error":      err.Error(),
		}).Warn("scheduler: poll cycle finished with error")
	}

	if outcome.Rearm {
		s.SchedulePoll(variantID, outcome.NextDelay)
		return
	}

	_ = s.scheduler.RemoveByTag(pollTagPrefix + variantID)
	s.updateTimerGauge()
}

// sweep reconcilia os timers com o banco: arma timers para testes
// pendentes ou ativos que perderam o timer (restart, falha de
// agendamento na criação) e desarma timers de testes que deixaram de
// estar rotacionáveis por fora.
func (s *RotationSchedulerService) sweep() {
	s.statusMutex.Lock()
	s.lastSweepStartedAt = time.Now()
	s.statusMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), rotationTimeout)
	defer cancel()

	tests, err := s.testRepo.ListByStatus(ctx, []domain.TestStatus{domain.TestStatusPending, domain.TestStatusActive})
	if err != nil {
		logrus.WithField("error", err.Error()).Error("scheduler: sweep failed to list rotatable tests")
		return
	}

	active := make(map[string]bool, len(tests))
	for _, test := range tests {
		active[test.ID] = true

		if !s.hasRotationTimer(test.ID) {
			logrus.WithField("test_id", test.ID).Info("Sweep rearmando timer perdido")
			if err := s.ScheduleTest(test); err != nil {
				logrus.WithFields(logrus.Fields{
					"test_id": test.ID,
					"error":   err.Error(),
				}).Error("scheduler: sweep failed to arm rotation timer")
			}
			continue
		}

		if test.CurrentVariantIndex != nil {
			s.ensurePollTimer(test.ID)
		}
	}

	for _, job := range s.scheduler.Jobs() {
		for _, tag := range job.Tags() {
			if !strings.HasPrefix(tag, rotationTagPrefix) {
				continue
			}

			testID := strings.TrimPrefix(tag, rotationTagPrefix)
			if !active[testID] {
				logrus.WithField("test_id", testID).Info("Sweep desarmando timer órfão")
				s.CancelTest(testID)
			}
		}
	}

	s.updateTimerGauge()

	s.statusMutex.Lock()
	s.lastSweepCompletedAt = time.Now()
	s.statusMutex.Unlock()

	logrus.WithField("active_tests", len(tests)).Debug("Sweep de reconciliação concluído")
}

func (s *RotationSchedulerService) hasRotationTimer(testID string) bool {
	return s.hasTag(rotationTagPrefix + testID)
}

func (s *RotationSchedulerService) hasPollTimer(variantID string) bool {
	return s.hasTag(pollTagPrefix + variantID)
}

func (s *RotationSchedulerService) hasTag(tag string) bool {
	for _, job := range s.scheduler.Jobs() {
		for _, jobTag := range job.Tags() {
			if jobTag == tag {
				return true
			}
		}
	}

	return false
}

func (s *RotationSchedulerService) testLock(testID string) *sync.Mutex {
	lock, _ := s.testLocks.LoadOrStore(testID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *RotationSchedulerService) updateTimerGauge() {
	count := 0
	for _, job := range s.scheduler.Jobs() {
		for _, tag := range job.Tags() {
			if strings.HasPrefix(tag, rotationTagPrefix) || strings.HasPrefix(tag, pollTagPrefix) {
				count++
			}
		}
	}

	metrics.ActiveTimers.Set(float64(count))
}
