package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameSpace                = "complaints_book"
	HttpStatusHistogram      = "http_status_histogram"
	DomainVerificationsTotal = "domain_verifications_total"
	ProvisioningJobsTotal    = "provisioning_jobs_total"
	ProvisioningPassDuration = "provisioning_pass_duration_seconds"
	ProvisioningJobsByStatus = "provisioning_jobs"
	NotificationStatus       = "notification_status"
	TenantResolutionsTotal   = "tenant_resolutions_total"
)

type Metrics struct {
	HttpStatusHistogram prometheus.HistogramVec

	DomainVerificationsTotal prometheus.CounterVec
	ProvisioningJobsTotal    prometheus.CounterVec
	ProvisioningPassDuration prometheus.Histogram
	ProvisioningJobsByStatus prometheus.GaugeVec
	NotificationStatus       prometheus.CounterVec
	TenantResolutionsTotal   prometheus.CounterVec

	reg *prometheus.Registry
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		panic("reg cannot be nil")
	}
	metrics := &Metrics{
		reg: reg,
		HttpStatusHistogram: *promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NameSpace,
			Name:      HttpStatusHistogram,
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status", "method", "path"}),
		DomainVerificationsTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      DomainVerificationsTotal,
			Help:      "Custom domain verifications by outcome reason",
		}, []string{"reason"}),
		ProvisioningJobsTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      ProvisioningJobsTotal,
			Help:      "Processed provisioning jobs by resulting status",
		}, []string{"status"}),
		ProvisioningPassDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: NameSpace,
			Name:      ProvisioningPassDuration,
			Help:      "Duration of a provisioning worker pass",
			Buckets:   []float64{0.1, 0.5, 1, 5, 20, 60, 180, 600},
		}),
		ProvisioningJobsByStatus: *promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: NameSpace,
			Name:      ProvisioningJobsByStatus,
			Help:      "Number of provisioning jobs in each status",
		}, []string{"status"}),
		NotificationStatus: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      NotificationStatus,
			Help:      "Result of domain notification events",
		}, []string{"state"}),
		TenantResolutionsTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      TenantResolutionsTotal,
			Help:      "Request host to tenant resolutions by source",
		}, []string{"source"}),
	}

	reg.MustRegister(collectors.NewBuildInfoCollector())

	return metrics
}

// The Record helpers accept a nil receiver so components can run without metrics.

func (m *Metrics) RecordVerification(reason string) {
	if m != nil {
		m.DomainVerificationsTotal.With(prometheus.Labels{"reason": reason}).Inc()
	}
}

func (m *Metrics) RecordJobResult(status string) {
	if m != nil {
		m.ProvisioningJobsTotal.With(prometheus.Labels{"status": status}).Inc()
	}
}

func (m *Metrics) RecordPassDuration(start time.Time) {
	if m != nil {
		m.ProvisioningPassDuration.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordNotificationStatus(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	if m != nil {
		m.NotificationStatus.With(prometheus.Labels{"state": status}).Inc()
	}
}

func (m *Metrics) RecordTenantResolution(source string) {
	if m != nil {
		m.TenantResolutionsTotal.With(prometheus.Labels{"source": source}).Inc()
	}
}

func (m Metrics) Registry() *prometheus.Registry {
	return m.reg
}
