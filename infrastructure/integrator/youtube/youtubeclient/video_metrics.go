package youtubeclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/domain"
	ownDomain "github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/utils"
)

const reportDateLayout = "2006-01-02"

// QueryVideoMetrics consulta a Analytics API e consolida as métricas do
// vídeo acumuladas desde since. A API agrega por dia fechado, então as
// rows são somadas aqui para formar o acumulado do período.
func (c *youtubeClient) QueryVideoMetrics(ctx context.Context, channelID, videoID string, since time.Time) (*ownDomain.VideoMetrics, error) {
	endpoint := c.cfg.YouTube.AnalyticsURL + "/reports"

	body, err := c.do(ctx, channelID, "reports.query", QuotaCostAnalyticsQuery, func(token string) (*http.Request, error) {
		params := url.Values{}
		params.Set("ids", "channel=="+channelID)
		params.Set("startDate", since.Format(reportDateLayout))
		params.Set("endDate", time.Now().Format(reportDateLayout))
		params.Set("metrics", "views,cardImpressions,averageViewDuration")
		params.Set("filters", "video=="+videoID)

		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	var report youtubedomain.ReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, errors.Wrap(err, "erro no unmarshal do relatório de métricas")
	}

	return consolidateReport(&report), nil
}

func consolidateReport(report *youtubedomain.ReportResponse) *ownDomain.VideoMetrics {
	index := report.MetricIndex()
	idxOf := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}
	viewsIdx, impressionsIdx, durationIdx := idxOf("views"), idxOf("cardImpressions"), idxOf("averageViewDuration")

	result := &ownDomain.VideoMetrics{}

	var durationWeighted float64
	for _, row := range report.Rows {
		views := youtubedomain.Float(row, viewsIdx)
		result.Views += int64(views)
		result.Impressions += int64(youtubedomain.Float(row, impressionsIdx))
		durationWeighted += youtubedomain.Float(row, durationIdx) * views
	}

	if result.Views > 0 {
		result.AverageViewDuration = utils.RoundWithTwoDecimalPlace(durationWeighted / float64(result.Views))
	}
	result.CTR = utils.SafeCTR(result.Views, result.Impressions)

	return result
}
