package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを保持する
type Metrics struct {
	registry *prometheus.Registry

	// HTTPメトリクス
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// ドメインメトリクス
	GigsAddedTotal          *prometheus.CounterVec
	RequestReconciliations  *prometheus.CounterVec
	WindowDerivationsTotal  *prometheus.CounterVec
	PendingRequests         prometheus.Gauge
	DistributedLockDuration *prometheus.HistogramVec
}

// New は新しいMetricsインスタンスを作成する
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry は指定されたレジストリでMetricsインスタンスを作成する
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTPリクエストの総数",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTPリクエストの処理時間",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		GigsAddedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigs_added_total",
				Help: "追加を試みた演奏枠の総数",
			},
			[]string{"result"},
		),
		RequestReconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "request_reconciliations_total",
				Help: "出演者の変更に伴う承認リクエストの調整回数",
			},
			[]string{"action"},
		),
		WindowDerivationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "window_derivations_total",
				Help: "イベント時間帯の導出回数",
			},
			[]string{"status"},
		),
		PendingRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pending_requests",
				Help: "未回答の承認リクエスト数",
			},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "分散ロックの保持時間",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GigsAddedTotal,
		m.RequestReconciliations,
		m.WindowDerivationsTotal,
		m.PendingRequests,
		m.DistributedLockDuration,
	)

	return m
}

// Registry はメトリクスのレジストリを返す
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var defaultMetrics *Metrics

// Init はデフォルトのメトリクスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスを返す
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init()
	}
	return defaultMetrics
}
