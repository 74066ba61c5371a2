package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campusvibe"

var (
	Registry = prometheus.NewRegistry()

	// MailMessages counts notifications by outcome: sent, failed, dropped.
	MailMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_messages_total",
		Help:      "Outgoing notification emails by outcome.",
	}, []string{"result"})

	// AutomationRuns counts scheduled job executions by job and outcome.
	AutomationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "automation_runs_total",
		Help:      "Scheduled automation runs by job and outcome.",
	}, []string{"job", "result"})

	// OffboardedUsers counts per-user off-boarding outcomes.
	OffboardedUsers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offboarded_users_total",
		Help:      "Users processed by the off-boarding sweep by outcome.",
	}, []string{"result"})

	ArchivedEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "archived_events_total",
		Help:      "Events archived and purged by the off-boarding sweep.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		MailMessages,
		AutomationRuns,
		OffboardedUsers,
		ArchivedEvents,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
