package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/smithy-go"
)

// RecordStorageCall records one object storage request. operation is the S3
// action, e.g. "PutObject".
func (m *Metrics) RecordStorageCall(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageCall", func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.StorageRequestsTotal.WithLabelValues(operation, status).Inc()
		m.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())

		if err != nil {
			m.StorageErrors.WithLabelValues(operation, getErrorType(err)).Inc()
		}
	})
}

// getErrorType categorizes storage errors by API code first, then by the
// transport failure text
func getErrorType(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return "no_such_bucket"
		case "NoSuchKey", "NotFound":
			return "not_found"
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return "access_denied"
		case "SlowDown", "ServiceUnavailable":
			return "throttled"
		}
		return "api_error"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "EOF"), strings.Contains(msg, "connection reset"):
		return "connection_reset"
	case strings.Contains(msg, "TLS"), strings.Contains(msg, "certificate"):
		return "tls_error"
	}
	return "network_error"
}
