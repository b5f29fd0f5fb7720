package youtubeclient

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/metrics"
)

// Custos por operação definidos pela Data API. O update de vídeo é a
// operação cara, então cada rotação consome 51 unidades no total.
const (
	QuotaCostVideosList     = 1
	QuotaCostVideosUpdate   = 50
	QuotaCostAnalyticsQuery = 1
)

// QuotaTracker contabiliza localmente o consumo do budget diário da API.
// O tracker é pessimista: debita antes da chamada e falha rápido quando o
// débito estouraria o budget, evitando queimar chamada que seria rejeitada.
type QuotaTracker struct {
	mu       sync.Mutex
	budget   int
	used     int
	resetAt  time.Time
	location *time.Location
}

func NewQuotaTracker(budget int, timezone string) (*QuotaTracker, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrap(err, "timezone de reset de quota inválida")
	}

	tracker := &QuotaTracker{
		budget:   budget,
		location: location,
	}
	tracker.resetAt = tracker.nextReset(time.Now())

	return tracker, nil
}

// Charge debita cost unidades do budget do dia. Retorna ErrQuotaExceeded
// sem debitar quando o budget restante é insuficiente.
func (t *QuotaTracker) Charge(cost int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked(time.Now())

	if t.used+cost > t.budget {
		return errors.Wrapf(domain.ErrQuotaExceeded, "budget diário %d, consumido %d, custo %d", t.budget, t.used, cost)
	}

	t.used += cost
	metrics.QuotaUsed.Set(float64(t.used))

	return nil
}

// Exhaust marca o budget do dia como esgotado. Usado quando a própria API
// rejeita por quota, o que indica consumo externo fora deste processo.
func (t *QuotaTracker) Exhaust() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked(time.Now())
	t.used = t.budget
	metrics.QuotaUsed.Set(float64(t.used))
}

func (t *QuotaTracker) Used() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked(time.Now())

	return t.used
}

func (t *QuotaTracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked(time.Now())

	return t.budget - t.used
}

// rolloverLocked zera o consumo quando o dia virou na timezone da quota.
// O chamador precisa segurar o mutex.
func (t *QuotaTracker) rolloverLocked(now time.Time) {
	if now.Before(t.resetAt) {
		return
	}

	t.used = 0
	t.resetAt = t.nextReset(now)
	metrics.QuotaUsed.Set(0)
}

func (t *QuotaTracker) nextReset(now time.Time) time.Time {
	local := now.In(t.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, t.location)

	return midnight.AddDate(0, 0, 1)
}
