package lead

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// leadsAccepted считает принятые лиды по виду формы.
// Повторные подписки и заявки не учитываются.
var leadsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leads_accepted_total",
	Help: "Number of accepted lead submissions by kind.",
}, []string{"kind"})
