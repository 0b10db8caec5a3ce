package service

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
)

// Random create/move/delete sequences run through the services keep every
// stored column and task group dense.
func TestProperty_StoredGroupsStayDense(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("columns and tasks keep orders 0..n-1", prop.ForAll(
		func(ops []int) bool {
			f := newBoardFixture(t)
			board, err := f.boards.CreateBoard(f.ctx, f.user.ID, &dto.CreateBoardRequest{Name: "prop"})
			if err != nil {
				return false
			}

			var columns []*dto.ColumnResponse
			var tasks []*dto.TaskResponse
			next := 0

			for _, op := range ops {
				target := op/6 - 2
				switch op % 6 {
				case 0:
					col, err := f.columns.CreateColumn(f.ctx, f.user.ID, board.ID, &dto.CreateColumnRequest{Name: fmt.Sprintf("c%d", next), Order: intPtr(target)})
					if err != nil {
						return false
					}
					next++
					columns = append(columns, col)
				case 1:
					if len(columns) == 0 {
						continue
					}
					if _, err := f.columns.MoveColumn(f.ctx, f.user.ID, columns[op%len(columns)].ID, target); err != nil {
						return false
					}
				case 2:
					if len(columns) == 0 {
						continue
					}
					i := op % len(columns)
					if err := f.columns.DeleteColumn(f.ctx, f.user.ID, columns[i].ID); err != nil {
						return false
					}
					columns = append(columns[:i], columns[i+1:]...)
					tasks = storedTasks(f, tasks)
				case 3:
					if len(columns) == 0 {
						continue
					}
					task, err := f.tasks.CreateTask(f.ctx, f.user.ID, columns[op%len(columns)].ID, &dto.CreateTaskRequest{Title: fmt.Sprintf("t%d", next)})
					if err != nil {
						return false
					}
					next++
					tasks = append(tasks, task)
				case 4:
					if len(tasks) == 0 || len(columns) == 0 {
						continue
					}
					dest := columns[(op/2)%len(columns)].ID
					if _, err := f.tasks.MoveTask(f.ctx, f.user.ID, tasks[op%len(tasks)].ID, &dto.MoveTaskRequest{ColumnID: dest, Order: intPtr(target)}); err != nil {
						return false
					}
				case 5:
					if len(tasks) == 0 {
						continue
					}
					i := op % len(tasks)
					if err := f.tasks.DeleteTask(f.ctx, f.user.ID, tasks[i].ID); err != nil {
						return false
					}
					tasks = append(tasks[:i], tasks[i+1:]...)
				}

				if !dense(columnOrders(t, f.db, board.ID)) {
					return false
				}
				for _, c := range columns {
					if !dense(taskOrders(t, f.db, c.ID)) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(30, gen.IntRange(0, 47)),
	))

	properties.TestingRun(t)
}

// storedTasks drops tasks removed along with their column
func storedTasks(f *boardFixture, tasks []*dto.TaskResponse) []*dto.TaskResponse {
	var kept []*dto.TaskResponse
	for _, task := range tasks {
		var stored domain.Task
		if err := f.db.Where("id = ?", task.ID).First(&stored).Error; err == nil {
			kept = append(kept, task)
		}
	}
	return kept
}
