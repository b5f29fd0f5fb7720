package youtubeclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/titlelab/title-rotator-api/internal/domain"
)

func TestQuotaTracker_Charge(t *testing.T) {
	t.Run("Débito dentro do budget", func(t *testing.T) {
		tracker, err := NewQuotaTracker(100, "America/Los_Angeles")
		assert.NoError(t, err)

		assert.NoError(t, tracker.Charge(QuotaCostVideosUpdate))
		assert.NoError(t, tracker.Charge(QuotaCostVideosList))
		assert.Equal(t, 51, tracker.Used())
		assert.Equal(t, 49, tracker.Remaining())
	})

	t.Run("Débito que estoura o budget falha sem consumir", func(t *testing.T) {
		tracker, err := NewQuotaTracker(60, "America/Los_Angeles")
		assert.NoError(t, err)

		assert.NoError(t, tracker.Charge(QuotaCostVideosUpdate))

		err = tracker.Charge(QuotaCostVideosUpdate)
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
		// o débito rejeitado não consome budget
		assert.Equal(t, 50, tracker.Used())

		// operações baratas ainda cabem
		assert.NoError(t, tracker.Charge(QuotaCostAnalyticsQuery))
	})

	t.Run("Exhaust esgota o dia inteiro", func(t *testing.T) {
		tracker, err := NewQuotaTracker(1000, "America/Los_Angeles")
		assert.NoError(t, err)

		tracker.Exhaust()

		assert.Equal(t, 0, tracker.Remaining())
		assert.ErrorIs(t, tracker.Charge(QuotaCostAnalyticsQuery), domain.ErrQuotaExceeded)
	})
}

func TestNewQuotaTracker_TimezoneInvalida(t *testing.T) {
	_, err := NewQuotaTracker(100, "Planeta/Marte")
	assert.Error(t, err)
}

func TestQuotaTracker_Rollover(t *testing.T) {
	tracker, err := NewQuotaTracker(100, "America/Los_Angeles")
	assert.NoError(t, err)

	assert.NoError(t, tracker.Charge(80))

	// força o reset simulando que a virada do dia já passou
	tracker.mu.Lock()
	tracker.resetAt = tracker.resetAt.AddDate(0, 0, -2)
	tracker.mu.Unlock()

	assert.Equal(t, 0, tracker.Used())
	assert.NoError(t, tracker.Charge(100))
}
