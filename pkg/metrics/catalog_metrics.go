package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InviteVerifications counts verify calls by token scope and outcome
	InviteVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_invite_verifications_total",
			Help: "Invite token verifications by scope (global, category) and outcome",
		},
		[]string{"scope", "outcome"},
	)

	// InvitesIssued counts newly created invite tokens
	InvitesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_invites_issued_total",
			Help: "Invite tokens issued by scope",
		},
		[]string{"scope"},
	)

	// CatalogMutations counts create/update/delete operations per entity
	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Catalog mutations by entity and operation",
		},
		[]string{"entity", "operation"},
	)

	// DerivedSortRows observes how many rows an in-memory sort had to materialize
	DerivedSortRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_derived_sort_rows",
			Help:    "Rows materialized for sorting by a derived field",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		},
		[]string{"entity"},
	)

	// VarietyRecounts counts reconciliation runs by result
	VarietyRecounts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_variety_recounts_total",
			Help: "Variety count reconciliation runs by result",
		},
		[]string{"result"},
	)
)

// RecordInviteVerification increments the verification counter
func RecordInviteVerification(scope, outcome string) {
	InviteVerifications.WithLabelValues(scope, outcome).Inc()
}

// RecordInviteIssued increments the issued counter
func RecordInviteIssued(scope string) {
	InvitesIssued.WithLabelValues(scope).Inc()
}

// RecordMutation increments the counter for catalog mutations
func RecordMutation(entity, operation string) {
	CatalogMutations.WithLabelValues(entity, operation).Inc()
}

// ObserveDerivedSort records the materialized row count of a derived sort
func ObserveDerivedSort(entity string, rows int) {
	DerivedSortRows.WithLabelValues(entity).Observe(float64(rows))
}

// RecordVarietyRecount increments the reconciliation counter
func RecordVarietyRecount(result string) {
	VarietyRecounts.WithLabelValues(result).Inc()
}
