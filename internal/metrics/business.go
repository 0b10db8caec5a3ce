package metrics

// Reorder kinds
const (
	ReorderColumnMove   = "column_move"
	ReorderTaskMove     = "task_move"
	ReorderTaskTransfer = "task_transfer"
	ReorderCompact      = "compact"
)

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementColumnCreated increments column creation counter
func (m *Metrics) IncrementColumnCreated() {
	m.safeExecute("IncrementColumnCreated", func() {
		m.ColumnCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// RecordReorder counts one committed reorder of the given kind
func (m *Metrics) RecordReorder(kind string) {
	m.safeExecute("RecordReorder", func() {
		m.ReordersTotal.WithLabelValues(kind).Inc()
	})
}

// RecordOrderRepair counts one sibling group renumbered by the repair job.
// group is "columns" or "tasks".
func (m *Metrics) RecordOrderRepair(group string) {
	m.safeExecute("RecordOrderRepair", func() {
		m.OrderRepairsTotal.WithLabelValues(group).Inc()
	})
}

// SetUsersTotal sets total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetColumnsTotal sets total columns gauge
func (m *Metrics) SetColumnsTotal(count int64) {
	m.safeExecute("SetColumnsTotal", func() {
		m.ColumnsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
