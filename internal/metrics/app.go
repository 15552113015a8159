package metrics

import (
	"strconv"

	"github.com/searchlens/searchlens/internal/observability"
)

// RecordInvestigation records a completed generate invocation.
func RecordInvestigation(recordCount, errorCount int) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "clean"
	if errorCount > 0 {
		status = "partial"
	}

	_ = observability.TelemetrySystem.Counter(
		"app_investigations_total",
		1,
		map[string]string{
			"status": status,
		},
	)
	_ = observability.TelemetrySystem.Gauge(
		"app_search_records_generated",
		float64(recordCount),
		nil,
	)
}

// RecordDispatch records a batch browser dispatch.
func RecordDispatch(opened, failed int) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "complete"
	if failed > 0 {
		status = "partial"
	}

	_ = observability.TelemetrySystem.Counter(
		"app_dispatches_total",
		1,
		map[string]string{
			"status": status,
		},
	)
	_ = observability.TelemetrySystem.Gauge(
		"app_tabs_opened",
		float64(opened),
		nil,
	)
}

// RecordError records an error with code and status.
func RecordError(errorCode string, httpStatus int) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		"errors_total",
		1,
		map[string]string{
			"error_code":  errorCode,
			"http_status": strconv.Itoa(httpStatus),
		},
	)
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint string, errorCode string) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		"errors_by_endpoint",
		1,
		map[string]string{
			"endpoint":   endpoint,
			"error_code": errorCode,
		},
	)
}

// RecordPanic records a panic recovery.
func RecordPanic() {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		"panics_total",
		1,
		nil,
	)
}
