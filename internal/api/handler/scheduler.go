package handler

import (
	"encoding/json"
	"net/http"

	"github.com/titlelab/title-rotator-api/internal/scheduler"
	"github.com/titlelab/title-rotator-api/pkg/log"
)

// QuotaReader expõe o consumo corrente do budget diário da plataforma
type QuotaReader interface {
	Used() int
	Remaining() int
}

type schedulerStatusResponse struct {
	*scheduler.SchedulerStatus
	Quota quotaSnapshot `json:"quota"`
}

type quotaSnapshot struct {
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

func GetSchedulerStatus(service *scheduler.RotationSchedulerService, quota QuotaReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		response := schedulerStatusResponse{
			SchedulerStatus: service.GetStatus(),
			Quota: quotaSnapshot{
				Used:      quota.Used(),
				Remaining: quota.Remaining(),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("scheduler: failed to encode status response")
		}
	})
}
