package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry collects correction-session outcome counters.
type Registry struct {
	reg *prometheus.Registry

	SessionsStarted    prometheus.Counter
	LoadFailures       prometheus.Counter
	FieldEdits         prometheus.Counter
	ItemRemovals       prometheus.Counter
	RejectedMutations  prometheus.Counter
	DirectSubmissions  prometheus.Counter
	SubmissionFailures prometheus.Counter
	PaymentHandoffs    prometheus.Counter
	DraftDiscards      prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	sessionsStarted := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_sessions_started_total"})
	loadFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_load_failures_total"})
	fieldEdits := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_field_edits_total"})
	itemRemovals := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_item_removals_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_rejected_mutations_total"})
	directSubmissions := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_direct_submissions_total"})
	submissionFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_submission_failures_total"})
	paymentHandoffs := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_payment_handoffs_total"})
	draftDiscards := prometheus.NewCounter(prometheus.CounterOpts{Name: "correction_draft_discards_total"})

	r.MustRegister(
		sessionsStarted, loadFailures, fieldEdits, itemRemovals, rejected,
		directSubmissions, submissionFailures, paymentHandoffs, draftDiscards,
	)

	return &Registry{
		reg:                r,
		SessionsStarted:    sessionsStarted,
		LoadFailures:       loadFailures,
		FieldEdits:         fieldEdits,
		ItemRemovals:       itemRemovals,
		RejectedMutations:  rejected,
		DirectSubmissions:  directSubmissions,
		SubmissionFailures: submissionFailures,
		PaymentHandoffs:    paymentHandoffs,
		DraftDiscards:      draftDiscards,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
