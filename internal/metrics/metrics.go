package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginTotal         *prometheus.CounterVec
	RegistrationsTotal prometheus.Counter
	TasksCreatedTotal  prometheus.Counter
	TasksDeletedTotal  prometheus.Counter
	LoginThrottled     prometheus.Counter

	initOnce sync.Once
)

// Init registers all collectors on the default registry. Safe to call more
// than once (tests construct several servers per process).
func Init() {
	initOnce.Do(func() {
		LoginTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"})

		RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_registrations_total",
			Help: "Successful account registrations.",
		})

		TasksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_tasks_created_total",
			Help: "Tasks created.",
		})

		TasksDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_tasks_deleted_total",
			Help: "Tasks deleted.",
		})

		LoginThrottled = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_login_throttled_total",
			Help: "Login attempts rejected by the rate limiter.",
		})

		prometheus.MustRegister(
			LoginTotal,
			RegistrationsTotal,
			TasksCreatedTotal,
			TasksDeletedTotal,
			LoginThrottled,
		)
	})
}
