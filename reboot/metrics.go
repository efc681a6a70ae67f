package reboot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const opLabel = "op"

var (
	instructionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reboot_instructions_applied",
		Help: "The number of reboot instructions applied to the octree.",
	}, []string{
		opLabel,
	})

	instructionsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reboot_instructions_skipped",
		Help: "The number of reboot instructions outside the initialization area.",
	})
)

func opLabels(on bool) prometheus.Labels {
	op := "off"
	if on {
		op = "on"
	}
	return prometheus.Labels{opLabel: op}
}
