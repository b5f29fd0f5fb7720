package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/titlelab/title-rotator-api/internal/api/handler/router"
	"github.com/titlelab/title-rotator-api/internal/scheduler"
	"github.com/titlelab/title-rotator-api/internal/usecases/channeling"
	"github.com/titlelab/title-rotator-api/internal/usecases/managing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Tests(service managing.TestManager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tests",
			Method:  http.MethodPost,
			Handler: CreateTest(service),
		},
		{
			Path:    "/v1/tests",
			Method:  http.MethodGet,
			Handler: ListTests(service),
		},
		{
			Path:    "/v1/tests/:id",
			Method:  http.MethodGet,
			Handler: GetTest(service),
		},
		{
			Path:    "/v1/tests/:id/pause",
			Method:  http.MethodPost,
			Handler: PauseTest(service),
		},
		{
			Path:    "/v1/tests/:id/resume",
			Method:  http.MethodPost,
			Handler: ResumeTest(service),
		},
		{
			Path:    "/v1/tests/:id/cancel",
			Method:  http.MethodPost,
			Handler: CancelTest(service),
		},
		{
			Path:    "/v1/tests/:id/rotate",
			Method:  http.MethodPost,
			Handler: TriggerRotation(service),
		},
		{
			Path:    "/v1/tests/:id/winner",
			Method:  http.MethodGet,
			Handler: GetWinner(service),
		},
		{
			Path:    "/v1/tests/:id/rotations",
			Method:  http.MethodGet,
			Handler: ListRotationLogs(service),
		},
	}
}

func Channels(service channeling.ChannelManager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/channels",
			Method:  http.MethodPost,
			Handler: RegisterChannel(service),
		},
		{
			Path:    "/v1/channels",
			Method:  http.MethodGet,
			Handler: ListChannels(service),
		},
		{
			Path:    "/v1/channels/:id",
			Method:  http.MethodGet,
			Handler: GetChannel(service),
		},
		{
			Path:    "/v1/channels/:id/authorize",
			Method:  http.MethodPost,
			Handler: AuthorizeChannel(service),
		},
	}
}

func Scheduler(service *scheduler.RotationSchedulerService, quota QuotaReader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/scheduler/status",
			Method:  http.MethodGet,
			Handler: GetSchedulerStatus(service, quota),
		},
	}
}
