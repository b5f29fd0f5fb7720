package winner

import (
	"sort"

	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/internal/stats"
)

// Pesos da métrica combinada: metade views, metade CTR, ambos
// normalizados pelo máximo observado no teste
const (
	combinedViewsWeight = 0.5
	combinedCTRWeight   = 0.5
)

// Select escolhe a variante vencedora entre os sumários de um teste.
// Função pura: mesmo conjunto de sumários e métrica produzem sempre o
// mesmo vencedor. Empates resolvem pela variante de menor order, que foi
// a ativada primeiro. Retorna nil quando não há sumários.
func Select(metric domain.WinnerMetric, summaries []*domain.VariantSummary) *domain.VariantSummary {
	if len(summaries) == 0 {
		return nil
	}

	scores := scoreSummaries(metric, summaries)

	best := summaries[0]
	bestScore := scores[best.VariantID]

	for _, summary := range summaries[1:] {
		score := scores[summary.VariantID]
		if score > bestScore || (score == bestScore && summary.VariantOrder < best.VariantOrder) {
			best = summary
			bestScore = score
		}
	}

	return best
}

func scoreSummaries(metric domain.WinnerMetric, summaries []*domain.VariantSummary) map[string]float64 {
	scores := make(map[string]float64, len(summaries))

	switch metric {
	case domain.WinnerMetricViews:
		for _, s := range summaries {
			scores[s.VariantID] = float64(s.TotalViews)
		}

	case domain.WinnerMetricCombined:
		var maxViews, maxCTR float64
		for _, s := range summaries {
			if float64(s.TotalViews) > maxViews {
				maxViews = float64(s.TotalViews)
			}
			if s.FinalCTR > maxCTR {
				maxCTR = s.FinalCTR
			}
		}

		for _, s := range summaries {
			var viewsNorm, ctrNorm float64
			if maxViews > 0 {
				viewsNorm = float64(s.TotalViews) / maxViews
			}
			if maxCTR > 0 {
				ctrNorm = s.FinalCTR / maxCTR
			}
			scores[s.VariantID] = combinedViewsWeight*viewsNorm + combinedCTRWeight*ctrNorm
		}

	default: // CTR
		for _, s := range summaries {
			scores[s.VariantID] = s.FinalCTR
		}
	}

	return scores
}

// Confidence estima o nível de confiança de que a variante líder em CTR é
// de fato melhor que a segunda colocada. Puramente informativo: não entra
// na seleção do vencedor. Retorna nil com menos de duas variantes ou sem
// impressões registradas.
func Confidence(summaries []*domain.VariantSummary) *float64 {
	if len(summaries) < 2 {
		return nil
	}

	ranked := make([]*domain.VariantSummary, len(summaries))
	copy(ranked, summaries)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalCTR != ranked[j].FinalCTR {
			return ranked[i].FinalCTR > ranked[j].FinalCTR
		}
		return ranked[i].VariantOrder < ranked[j].VariantOrder
	})

	first, second := ranked[0], ranked[1]
	if first.TotalImpressions == 0 || second.TotalImpressions == 0 {
		return nil
	}

	confidence := stats.TwoProportionConfidence(
		first.TotalViews, first.TotalImpressions,
		second.TotalViews, second.TotalImpressions,
	)

	return &confidence
}
