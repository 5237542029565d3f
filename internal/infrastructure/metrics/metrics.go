package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 렌더링 관련 메트릭
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netstate_renders_total",
			Help: "Total number of network state renders",
		},
		[]string{"backend", "status"}, // success, failed
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netstate_render_duration_seconds",
			Help:    "Time spent rendering network state",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// 활성화 관련 메트릭
	ActivationCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netstate_activation_commands_total",
			Help: "Total number of interface activation commands executed",
		},
		[]string{"backend", "status"},
	)

	// 폴링 관련 메트릭
	PollingCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netstate_polling_cycles_total",
			Help: "Total number of polling cycles executed",
		},
	)

	PollingCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netstate_polling_cycle_duration_seconds",
			Help:    "Time spent in each polling cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	PollingBackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netstate_polling_backoff_level",
			Help: "Current backoff level (0 = no backoff)",
		},
	)

	// 데이터베이스 연결 관련 메트릭
	DBConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netstate_db_connection_status",
			Help: "Database connection status (1 = connected, 0 = disconnected)",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netstate_db_query_duration_seconds",
			Help:    "Time spent executing database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type"}, // get_desired_state, mark_applied, etc.
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netstate_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, network, system, not_found, timeout
	)

	// 시스템 정보
	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netstate_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "os_id", "node_name"},
	)
)

// RecordRender는 렌더링 결과와 소요 시간을 기록합니다
func RecordRender(backend string, status string, duration float64) {
	RendersTotal.WithLabelValues(backend, status).Inc()
	RenderDuration.WithLabelValues(backend).Observe(duration)
}

// RecordActivation은 활성화 명령 결과를 기록합니다
func RecordActivation(backend string, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	ActivationCommands.WithLabelValues(backend, status).Inc()
}

// RecordPollingCycle은 폴링 사이클 메트릭을 기록합니다
func RecordPollingCycle(duration float64) {
	PollingCycleCount.Inc()
	PollingCycleDuration.Observe(duration)
}

// RecordDBQuery는 데이터베이스 쿼리 시간을 기록합니다
func RecordDBQuery(queryType string, duration float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(duration)
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetBackoffLevel은 현재 백오프 레벨을 설정합니다
func SetBackoffLevel(level float64) {
	PollingBackoffLevel.Set(level)
}

// SetDBConnectionStatus는 데이터베이스 연결 상태를 설정합니다
func SetDBConnectionStatus(connected bool) {
	if connected {
		DBConnectionStatus.Set(1)
	} else {
		DBConnectionStatus.Set(0)
	}
}

// SetAgentInfo는 에이전트 정보를 설정합니다
func SetAgentInfo(version, osID, nodeName string) {
	AgentInfo.WithLabelValues(version, osID, nodeName).Set(1)
}
