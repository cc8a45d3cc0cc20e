package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "league_brackets"

// Recorder receives bracket generation events.
type Recorder interface {
	PreviewServed(bracketType string, ok bool)
	GenerationFinished(bracketType, outcome string)
	MatchesCommitted(created, failed int)
	CommitDuration(d time.Duration)
	ArchiveFailed()
}

type prometheusRecorder struct {
	previews       *prometheus.CounterVec
	generations    *prometheus.CounterVec
	matches        *prometheus.CounterVec
	commitDuration prometheus.Histogram
	archiveErrors  prometheus.Counter
}

// NewPrometheusRecorder registers the bracket collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) Recorder {
	r := &prometheusRecorder{
		previews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_total",
			Help:      "Bracket previews by bracket type and validation result.",
		}, []string{"bracket_type", "result"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Bracket generations by bracket type and commit outcome.",
		}, []string{"bracket_type", "outcome"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_records_total",
			Help:      "Match insert attempts by result.",
		}, []string{"result"}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "commit_duration_seconds",
			Help:      "Time spent persisting one generated bracket.",
			Buckets:   prometheus.DefBuckets,
		}),
		archiveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_failures_total",
			Help:      "Bracket snapshots that could not be uploaded.",
		}),
	}
	reg.MustRegister(r.previews, r.generations, r.matches, r.commitDuration, r.archiveErrors)
	return r
}

func (r *prometheusRecorder) PreviewServed(bracketType string, ok bool) {
	result := "valid"
	if !ok {
		result = "invalid"
	}
	r.previews.WithLabelValues(bracketType, result).Inc()
}

func (r *prometheusRecorder) GenerationFinished(bracketType, outcome string) {
	r.generations.WithLabelValues(bracketType, outcome).Inc()
}

func (r *prometheusRecorder) MatchesCommitted(created, failed int) {
	r.matches.WithLabelValues("created").Add(float64(created))
	r.matches.WithLabelValues("failed").Add(float64(failed))
}

func (r *prometheusRecorder) CommitDuration(d time.Duration) {
	r.commitDuration.Observe(d.Seconds())
}

func (r *prometheusRecorder) ArchiveFailed() {
	r.archiveErrors.Inc()
}

type noopRecorder struct{}

// NoOp discards every event.
func NoOp() Recorder { return noopRecorder{} }

func (noopRecorder) PreviewServed(string, bool) {}
func (noopRecorder) GenerationFinished(string, string) {}
func (noopRecorder) MatchesCommitted(int, int) {}
func (noopRecorder) CommitDuration(time.Duration) {}
func (noopRecorder) ArchiveFailed() {}
