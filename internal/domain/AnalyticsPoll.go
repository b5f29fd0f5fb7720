package domain

import "time"

// AnalyticsPoll é uma observação de métricas da variante ativa.
// Série append-only: nunca atualizada depois de criada.
type AnalyticsPoll struct {
	ID                  string    `json:"id"`
	VariantID           string    `json:"variant_id"`
	PolledAt            time.Time `json:"polled_at"`
	Views               int64     `json:"views"`
	Impressions         int64     `json:"impressions"`
	CTR                 float64   `json:"ctr"`
	AverageViewDuration float64   `json:"average_view_duration"`
}

// VideoMetrics é o retrato de métricas devolvido pela plataforma externa
type VideoMetrics struct {
	Views               int64   `json:"views"`
	Impressions         int64   `json:"impressions"`
	CTR                 float64 `json:"ctr"`
	AverageViewDuration float64 `json:"average_view_duration"`
}
