package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var knownCommands = map[string]bool{"/h": true, "/id": true, "/info": true, "/q": true, "/t": true, "/u": true}

// Commands counts dispatched chat commands.
type Commands struct {
	total *prometheus.CounterVec
}

// NewCommands registers the command collectors on reg.
func NewCommands(reg prometheus.Registerer) *Commands {
	return &Commands{
		// Labels: command (/h, /id, /info, /q, /t, /u, other)
		total: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexicon",
			Subsystem: "bot",
			Name:      "commands_total",
			Help:      "Chat commands handled, by command",
		}, []string{"command"}),
	}
}

// ObserveCommand counts one command. Unrecognized commands share the "other" label.
func (m *Commands) ObserveCommand(command string) {
	if !knownCommands[command] {
		command = "other"
	}
	m.total.WithLabelValues(command).Inc()
}
