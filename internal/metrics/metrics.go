// Package metrics collects and exposes Prometheus metrics for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is implemented by the Prometheus collector below and satisfied
// by a nil-safe no-op for tests.
type Collector interface {
	RecordTaskGenerated(category string)
	RecordGenerationFailure()
	RecordVerdict(verdict string)
	RecordLLMLatency(purpose string, duration time.Duration)
	RecordReminderFired()
	RecordSurveySent()
}

// PromCollector implements Collector on a Prometheus registry.
type PromCollector struct {
	tasksGenerated *prometheus.CounterVec
	genFailures    prometheus.Counter
	verdicts       *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
	remindersFired prometheus.Counter
	surveysSent    prometheus.Counter
}

// NewCollector creates a PromCollector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *PromCollector {
	c := &PromCollector{
		tasksGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusbot_tasks_generated_total",
			Help: "Exercises generated, by category.",
		}, []string{"category"}),
		genFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusbot_generation_failures_total",
			Help: "Terminal exercise generation failures.",
		}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusbot_answers_total",
			Help: "Evaluated answers, by verdict (correct, incorrect, unverified).",
		}, []string{"verdict"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "focusbot_llm_latency_seconds",
			Help:    "Model call latency, by purpose.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}, []string{"purpose"}),
		remindersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusbot_reminders_fired_total",
			Help: "Daily reminder deliveries attempted.",
		}),
		surveysSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "focusbot_surveys_sent_total",
			Help: "Day-two feedback notices sent.",
		}),
	}

	reg.MustRegister(
		c.tasksGenerated,
		c.genFailures,
		c.verdicts,
		c.llmLatency,
		c.remindersFired,
		c.surveysSent,
	)

	return c
}

func (c *PromCollector) RecordTaskGenerated(category string) {
	c.tasksGenerated.WithLabelValues(category).Inc()
}

func (c *PromCollector) RecordGenerationFailure() {
	c.genFailures.Inc()
}

func (c *PromCollector) RecordVerdict(verdict string) {
	c.verdicts.WithLabelValues(verdict).Inc()
}

func (c *PromCollector) RecordLLMLatency(purpose string, duration time.Duration) {
	c.llmLatency.WithLabelValues(purpose).Observe(duration.Seconds())
}

func (c *PromCollector) RecordReminderFired() {
	c.remindersFired.Inc()
}

func (c *PromCollector) RecordSurveySent() {
	c.surveysSent.Inc()
}

// Noop is a Collector that records nothing. Used in tests and when the
// ops endpoint is disabled.
type Noop struct{}

func (Noop) RecordTaskGenerated(string)             {}
func (Noop) RecordGenerationFailure()               {}
func (Noop) RecordVerdict(string)                   {}
func (Noop) RecordLLMLatency(string, time.Duration) {}
func (Noop) RecordReminderFired()                   {}
func (Noop) RecordSurveySent()                      {}
