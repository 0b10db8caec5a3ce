package metrics

// SetWSConnections sets the open feed connection gauge
func (m *Metrics) SetWSConnections(count int) {
	m.safeExecute("SetWSConnections", func() {
		m.WSConnections.Set(float64(count))
	})
}

// RecordEventPublished counts one event handed to the live feed
func (m *Metrics) RecordEventPublished(eventType string) {
	m.safeExecute("RecordEventPublished", func() {
		m.WSEventsPublished.WithLabelValues(eventType).Inc()
	})
}
