package winterize

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	winterizeRunning = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "running"),
		"1 if a winterize run is in progress",
		[]string{"device"},
		nil,
	)
	winterizeStep = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "step"),
		"Current step of the winterize run",
		[]string{"device"},
		nil,
	)
	winterizeStepsTotal = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "steps"),
		"Number of steps in the winterize schedule",
		[]string{"device"},
		nil,
	)
	winterizeStepsCompleted = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "steps_completed"),
		"Number of steps completed",
		[]string{"device"},
		nil,
	)
	winterizeStepsSkipped = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "steps_skipped"),
		"Number of steps skipped because the zone was not found on the device",
		[]string{"device"},
		nil,
	)
	winterizeRemainingSeconds = prometheus.NewDesc(
		prometheus.BuildFQName("rachio", "winterize", "remaining_seconds"),
		"Estimated time left in the winterize run, in seconds",
		[]string{"device"},
		nil,
	)
)

var _ prometheus.Collector = &Sequencer{}

func (s *Sequencer) Describe(ch chan<- *prometheus.Desc) {
	ch <- winterizeRunning
	ch <- winterizeStep
	ch <- winterizeStepsTotal
	ch <- winterizeStepsCompleted
	ch <- winterizeStepsSkipped
	ch <- winterizeRemainingSeconds
}

func (s *Sequencer) Collect(ch chan<- prometheus.Metric) {
	status := s.Status()
	if status.State == Idle {
		return
	}
	var running float64
	if status.State == Running {
		running = 1
	}
	ch <- prometheus.MustNewConstMetric(winterizeRunning, prometheus.GaugeValue, running, status.Device)
	ch <- prometheus.MustNewConstMetric(winterizeStep, prometheus.GaugeValue, float64(status.Step), status.Device)
	ch <- prometheus.MustNewConstMetric(winterizeStepsTotal, prometheus.GaugeValue, float64(status.StepCount), status.Device)
	ch <- prometheus.MustNewConstMetric(winterizeStepsCompleted, prometheus.GaugeValue, float64(status.Completed), status.Device)
	ch <- prometheus.MustNewConstMetric(winterizeStepsSkipped, prometheus.GaugeValue, float64(status.Skipped), status.Device)
	ch <- prometheus.MustNewConstMetric(winterizeRemainingSeconds, prometheus.GaugeValue, float64(status.RemainingSeconds), status.Device)
}
