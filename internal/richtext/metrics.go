package richtext

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "richtext"

type serviceMetrics struct {
	uploads  *prometheus.CounterVec
	exports  *prometheus.CounterVec
	bootTime prometheus.Gauge
}

func newServiceMetrics(reg prometheus.Registerer) (*serviceMetrics, error) {
	m := &serviceMetrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploads_total",
			Help:      "Uploaded files by upload source and result",
		}, []string{"source", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exports_total",
			Help:      "Document exports by format and result",
		}, []string{"format", "result"}),
		bootTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "boot_time",
			Help:      "Server startup time",
		}),
	}
	m.bootTime.Set(float64(time.Now().UnixMilli()))

	for _, c := range []prometheus.Collector{m.uploads, m.exports, m.bootTime} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *serviceMetrics) upload(source string, err error) {
	m.uploads.WithLabelValues(source, result(err)).Inc()
}

func (m *serviceMetrics) export(format string, err error) {
	m.exports.WithLabelValues(format, result(err)).Inc()
}
