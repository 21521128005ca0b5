package rachio

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/clambin/go-common/http/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRequestMetrics returns metrics for calls to the Rachio API. Object IDs are removed from the path label,
// so all calls for the same API endpoint share one set of metrics.
func NewRequestMetrics(namespace, subsystem string, labels prometheus.Labels) metrics.RequestMetrics {
	return metrics.NewRequestMetrics(metrics.Options{
		Namespace:   namespace,
		Subsystem:   subsystem,
		ConstLabels: labels,
		LabelValues: func(request *http.Request, code int) (string, string, string) {
			return request.Method, endpoint(request.URL.Path), strconv.Itoa(code)
		},
	})
}

func endpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// strip the API version prefix ("1/public")
	for len(parts) > 0 && parts[0] != "person" && parts[0] != "device" && parts[0] != "zone" {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return path
	}
	switch parts[0] {
	case "person":
		if len(parts) > 1 && parts[1] == "info" {
			return "/person/info"
		}
		return "/person"
	case "device":
		if len(parts) > 2 && parts[2] == "event" {
			return "/device/event"
		}
	}
	return "/" + strings.Join(parts, "/")
}
