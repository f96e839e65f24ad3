package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	habitCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_habit_completions_total",
			Help: "Completions logged, by habit kind",
		},
		[]string{"kind"},
	)

	badgesAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_badges_awarded_total",
			Help: "Badges awarded, by badge name",
		},
		[]string{"badge"},
	)

	completionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wellness_completion_conflicts_total",
			Help: "Completion writes that lost an optimistic-concurrency race and were retried",
		},
	)
)
