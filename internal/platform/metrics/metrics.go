// Package metrics exposes the Prometheus collectors the service records into.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flashdeck"

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Metrics holds the Prometheus collectors for reviews, queues, quizzes and HTTP traffic.
type Metrics struct {
	// Review workflow
	ReviewsTotal   *prometheus.CounterVec
	LapsesTotal    prometheus.Counter
	ReviewInterval prometheus.Histogram
	QueueCards     *prometheus.HistogramVec
	DeckResets     prometheus.Counter

	// Quiz generation
	QuizQuestionsTotal *prometheus.CounterVec

	// HTTP surface
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimitedTotal    prometheus.Counter
}

// Default returns the process-wide metrics registered on prometheus.DefaultRegisterer.
// Registration happens once; later calls return the same instance.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New creates the collectors and registers them on reg.
// Tests pass a fresh prometheus.NewRegistry() to stay isolated.
//
// Metrics:
//   - flashdeck_reviews_total{rating}
//   - flashdeck_lapses_total
//   - flashdeck_review_interval_days
//   - flashdeck_queue_cards{partition}
//   - flashdeck_deck_resets_total
//   - flashdeck_quiz_questions_total{mode}
//   - flashdeck_http_requests_total{method,route,status}
//   - flashdeck_http_request_duration_seconds{method,route}
//   - flashdeck_rate_limited_total
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_total",
				Help:      "Total number of card ratings submitted",
			},
			[]string{"rating"},
		),

		LapsesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lapses_total",
				Help:      "Total number of failed recalls",
			},
		),

		ReviewInterval: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "review_interval_days",
				Help:      "Interval in days scheduled after each rating",
				Buckets:   []float64{1, 3, 7, 14, 30, 60, 120, 240, 365},
			},
		),

		QueueCards: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "queue_cards",
				Help:      "Number of cards per partition in served study queues",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 9), // 1 to 256
			},
			[]string{"partition"},
		),

		DeckResets: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deck_resets_total",
				Help:      "Total number of deck resets",
			},
		),

		QuizQuestionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_questions_total",
				Help:      "Total number of quiz questions generated",
			},
			[]string{"mode"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

// RecordReview records a rating and the interval it produced.
func (m *Metrics) RecordReview(rating string, lapse bool, intervalDays int) {
	m.ReviewsTotal.WithLabelValues(rating).Inc()
	if lapse {
		m.LapsesTotal.Inc()
	}
	m.ReviewInterval.Observe(float64(intervalDays))
}

// RecordQueue records the size of each partition of a served queue.
func (m *Metrics) RecordQueue(newCards, learning, due int) {
	m.QueueCards.WithLabelValues("new").Observe(float64(newCards))
	m.QueueCards.WithLabelValues("learning").Observe(float64(learning))
	m.QueueCards.WithLabelValues("due").Observe(float64(due))
}

// RecordQuizQuestion counts a generated question by mode.
func (m *Metrics) RecordQuizQuestion(mode string) {
	m.QuizQuestionsTotal.WithLabelValues(mode).Inc()
}

// RecordDeckReset counts a deck reset.
func (m *Metrics) RecordDeckReset() {
	m.DeckResets.Inc()
}

// RecordHTTPRequest records a completed request. route should be the router
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}
