package domain

import "time"

// TaskStatus is the column a task sits in on the board.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// Task is a simple task-board card.
type Task struct {
	TaskID      string     `json:"taskID"` // Primary Key (UUID)
	Title       string     `json:"title"`
	Description string     `json:"description"` // Nullable
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"dueDate"` // Nullable
	AuditFields
}

// NextStatus returns the status a task advances to on the board.
// DONE is terminal.
func (t Task) NextStatus() TaskStatus {
	switch t.Status {
	case TaskTodo:
		return TaskInProgress
	case TaskInProgress:
		return TaskDone
	default:
		return TaskDone
	}
}
