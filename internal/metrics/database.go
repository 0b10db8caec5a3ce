package metrics

import (
	"database/sql"
	"strings"
	"time"
)

type poolWaits struct {
	count    int64
	duration time.Duration
}

// UpdateDBStats mirrors a pool snapshot. Wait counters only grow by the
// amount waited since the previous snapshot.
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.poolMu.Lock()
		defer m.poolMu.Unlock()
		// a reopened pool starts counting from zero again
		if stats.WaitCount < m.poolWaits.count || stats.WaitDuration < m.poolWaits.duration {
			m.poolWaits = poolWaits{}
		}
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount - m.poolWaits.count))
		m.DBConnectionWaitDuration.Add((stats.WaitDuration - m.poolWaits.duration).Seconds())
		m.poolWaits = poolWaits{count: stats.WaitCount, duration: stats.WaitDuration}
	})
}

// RecordDBQuery records one GORM statement against a board, column or task table
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = normalizeOperation(operation)
		table = normalizeTable(table)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

func normalizeOperation(op string) string {
	return strings.ToLower(op)
}

// normalizeTable keeps raw SQL and quoted names from exploding the label set
func normalizeTable(table string) string {
	table = strings.Trim(strings.ToLower(table), "\"` ")
	if table == "" {
		return "unknown"
	}
	return table
}
