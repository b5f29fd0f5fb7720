package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores e gauges do motor de rotação, expostos em /metrics
var (
	RotationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "title_rotator_rotations_total",
		Help: "Total de rotações executadas, por resultado",
	}, []string{"outcome"})

	PollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "title_rotator_polls_total",
		Help: "Total de polls de analytics executados, por resultado",
	}, []string{"outcome"})

	PlatformCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "title_rotator_platform_calls_total",
		Help: "Chamadas à API da plataforma externa, por operação e status",
	}, []string{"operation", "status"})

	QuotaUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "title_rotator_quota_units_used",
		Help: "Unidades de quota consumidas no ciclo diário corrente",
	})

	ActiveTimers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "title_rotator_active_timers",
		Help: "Timers de rotação atualmente armados no agendador",
	})

	TestsAutoPaused = promauto.NewCounter(prometheus.CounterOpts{
		Name: "title_rotator_tests_auto_paused_total",
		Help: "Testes pausados automaticamente por credencial revogada",
	})
)
