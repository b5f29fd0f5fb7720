package domain

import (
	"time"
)

type TestStatus string

const (
	TestStatusPending   TestStatus = "PENDING"
	TestStatusActive    TestStatus = "ACTIVE"
	TestStatusPaused    TestStatus = "PAUSED"
	TestStatusCompleted TestStatus = "COMPLETED"
	TestStatusCancelled TestStatus = "CANCELLED"
)

// IsTerminal indica se o status não admite mais transições
func (s TestStatus) IsTerminal() bool {
	return s == TestStatusCompleted || s == TestStatusCancelled
}

type PauseReason string

const (
	// PauseReasonUser indica pausa solicitada pelo usuário
	PauseReasonUser PauseReason = "USER"
	// PauseReasonAuthRequired indica pausa automática por credencial revogada,
	// exige reautorização manual do canal antes do resume
	PauseReasonAuthRequired PauseReason = "AUTH_REQUIRED"
)

type WinnerMetric string

const (
	WinnerMetricCTR      WinnerMetric = "CTR"
	WinnerMetricViews    WinnerMetric = "VIEWS"
	WinnerMetricCombined WinnerMetric = "COMBINED"
)

func (m WinnerMetric) IsValid() bool {
	switch m {
	case WinnerMetricCTR, WinnerMetricViews, WinnerMetricCombined:
		return true
	}
	return false
}

// TitleTest representa uma campanha de rotação de títulos para um vídeo
type TitleTest struct {
	ID                      string       `json:"id"`
	ChannelID               string       `json:"channel_id"`
	VideoID                 string       `json:"video_id"`
	Status                  TestStatus   `json:"status"`
	PauseReason             *PauseReason `json:"pause_reason,omitempty"`
	RotationIntervalMinutes int          `json:"rotation_interval_minutes"`
	WinnerMetric            WinnerMetric `json:"winner_metric"`
	StartDate               time.Time    `json:"start_date"`
	EndDate                 *time.Time   `json:"end_date,omitempty"`
	// CurrentVariantIndex aponta para o order da última variante ativada.
	// Nil enquanto nenhuma variante foi ativada.
	CurrentVariantIndex *int       `json:"current_variant_index,omitempty"`
	WinnerVariantID     *string    `json:"winner_variant_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// EndDateReached indica se a data limite do teste já passou
func (t *TitleTest) EndDateReached(now time.Time) bool {
	return t.EndDate != nil && !t.EndDate.IsZero() && now.After(*t.EndDate)
}

type CreateTestRequest struct {
	ChannelID               string   `json:"channel_id" validate:"required"`
	VideoID                 string   `json:"video_id" validate:"required"`
	Titles                  []string `json:"titles" validate:"required,min=2,max=5,dive,required,max=100"`
	RotationIntervalMinutes int      `json:"rotation_interval_minutes" validate:"required,min=1"`
	WinnerMetric            string   `json:"winner_metric" validate:"required,oneof=CTR VIEWS COMBINED"`
	EndDate                 *string  `json:"end_date,omitempty"`
}

type TestResponse struct {
	Test     *TitleTest `json:"test"`
	Variants []*Variant `json:"variants,omitempty"`
}
