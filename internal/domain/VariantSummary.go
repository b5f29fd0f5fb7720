package domain

import "time"

// VariantSummary consolida a série de polls de uma variante no momento em
// que o teste é completado. Imutável depois de gravado; é a única entrada
// do seletor de vencedor.
type VariantSummary struct {
	ID                       string    `json:"id"`
	VariantID                string    `json:"variant_id"`
	TestID                   string    `json:"test_id"`
	VariantOrder             int       `json:"variant_order"`
	Title                    string    `json:"title"`
	TotalViews               int64     `json:"total_views"`
	TotalImpressions         int64     `json:"total_impressions"`
	FinalCTR                 float64   `json:"final_ctr"`
	FinalAverageViewDuration float64   `json:"final_average_view_duration"`
	CreatedAt                time.Time `json:"created_at"`
}

type WinnerResponse struct {
	TestID string `json:"test_id"`
	// Winner é nil quando o teste terminou sem nenhuma variante ativada
	Winner    *VariantSummary   `json:"winner,omitempty"`
	Metric    WinnerMetric      `json:"metric"`
	Summaries []*VariantSummary `json:"summaries"`
	// Confidence é informativo: nível de confiança estatística de que a
	// variante líder em CTR é de fato melhor (não altera a seleção)
	Confidence *float64 `json:"confidence,omitempty"`
}
