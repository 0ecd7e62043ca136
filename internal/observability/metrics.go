package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the academic profile service.
// Metrics are organized by subsystem: document store, directory records,
// statistics, search, authentication and HTTP. All counters and histograms are
// registered via promauto with the default Prometheus registry.
//
// Every Record* method tolerates a nil receiver.
type Metrics struct {
	// StoreReads counts collection loads, labeled by collection.
	StoreReads *prometheus.CounterVec

	// StoreWrites counts collection rewrites, labeled by collection.
	StoreWrites *prometheus.CounterVec

	// StoreWriteDuration observes the time taken to persist a collection.
	StoreWriteDuration *prometheus.HistogramVec

	// StoreFaults counts unreadable or corrupt collections, labeled by collection.
	StoreFaults *prometheus.CounterVec

	// PublicationsAdded counts publications added or replaced.
	PublicationsAdded prometheus.Counter

	// PublicationsDeleted counts publications removed.
	PublicationsDeleted prometheus.Counter

	// ProfilesUpserted counts profile saves.
	ProfilesUpserted prometheus.Counter

	// StatisticsComputed counts statistics computations, labeled by scope (owner, global).
	StatisticsComputed *prometheus.CounterVec

	// StatisticsDuration observes statistics computation time in seconds.
	StatisticsDuration *prometheus.HistogramVec

	// SearchesTotal counts profile searches.
	SearchesTotal prometheus.Counter

	// SearchResults observes the number of profiles returned per search.
	SearchResults prometheus.Histogram

	// LoginsSucceeded counts successful logins.
	LoginsSucceeded prometheus.Counter

	// LoginsFailed counts failed logins, labeled by reason.
	LoginsFailed *prometheus.CounterVec

	// HTTPRequests counts HTTP requests, labeled by method, route and status.
	HTTPRequests *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request latency in seconds, labeled by method and route.
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Store
		StoreReads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "reads_total",
			Help:      "Total number of collection loads",
		}, []string{"collection"}),
		StoreWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Total number of collection rewrites",
		}, []string{"collection"}),
		StoreWriteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "write_duration_seconds",
			Help:      "Time taken to persist a collection in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"collection"}),
		StoreFaults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "faults_total",
			Help:      "Total number of unreadable or corrupt collection loads",
		}, []string{"collection"}),

		// Records
		PublicationsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publications_added_total",
			Help:      "Total number of publications added or replaced",
		}),
		PublicationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publications_deleted_total",
			Help:      "Total number of publications deleted",
		}),
		ProfilesUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_upserted_total",
			Help:      "Total number of profile saves",
		}),

		// Statistics
		StatisticsComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statistics_computed_total",
			Help:      "Total number of statistics computations",
		}, []string{"scope"}),
		StatisticsDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "statistics_duration_seconds",
			Help:      "Duration of statistics computations in seconds",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"scope"}),

		// Search
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_searches_total",
			Help:      "Total number of profile searches",
		}),
		SearchResults: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_search_results",
			Help:      "Number of profiles returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),

		// Auth
		LoginsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_succeeded_total",
			Help:      "Total number of successful logins",
		}),
		LoginsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_failed_total",
			Help:      "Total number of failed logins",
		}, []string{"reason"}),

		// HTTP
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordStoreRead records a collection load.
func (m *Metrics) RecordStoreRead(collection string) {
	if m == nil {
		return
	}
	m.StoreReads.WithLabelValues(collection).Inc()
}

// RecordStoreWrite records a collection rewrite and its duration.
func (m *Metrics) RecordStoreWrite(collection string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.StoreWrites.WithLabelValues(collection).Inc()
	m.StoreWriteDuration.WithLabelValues(collection).Observe(durationSeconds)
}

// RecordStoreFault records an unreadable or corrupt collection.
func (m *Metrics) RecordStoreFault(collection string) {
	if m == nil {
		return
	}
	m.StoreFaults.WithLabelValues(collection).Inc()
}

// RecordPublicationAdded records an added or replaced publication.
func (m *Metrics) RecordPublicationAdded() {
	if m == nil {
		return
	}
	m.PublicationsAdded.Inc()
}

// RecordPublicationDeleted records a removed publication.
func (m *Metrics) RecordPublicationDeleted() {
	if m == nil {
		return
	}
	m.PublicationsDeleted.Inc()
}

// RecordProfileUpserted records a profile save.
func (m *Metrics) RecordProfileUpserted() {
	if m == nil {
		return
	}
	m.ProfilesUpserted.Inc()
}

// RecordStatisticsComputed records a statistics computation for the given scope.
func (m *Metrics) RecordStatisticsComputed(scope string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.StatisticsComputed.WithLabelValues(scope).Inc()
	m.StatisticsDuration.WithLabelValues(scope).Observe(durationSeconds)
}

// RecordSearch records a profile search and the number of matches.
func (m *Metrics) RecordSearch(resultCount int) {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
	m.SearchResults.Observe(float64(resultCount))
}

// RecordLoginSucceeded records a successful login.
func (m *Metrics) RecordLoginSucceeded() {
	if m == nil {
		return
	}
	m.LoginsSucceeded.Inc()
}

// RecordLoginFailed records a failed login with a short reason label
// (e.g., "invalid_credentials", "rate_limited").
func (m *Metrics) RecordLoginFailed(reason string) {
	if m == nil {
		return
	}
	m.LoginsFailed.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
