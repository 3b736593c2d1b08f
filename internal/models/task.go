package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Status    TaskStatus `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	ProjectID uint64     `gorm:"not null;index" json:"project_id"`
	CreatedBy uint64     `gorm:"not null;index" json:"created_by"`
	// AssigneeID is nil while the task is unassigned.
	AssigneeID *uint64 `gorm:"index" json:"assignee_id"`
	// LinkedTaskID is a predecessor reference stored as a plain id. It may
	// point at any task in the same project, the task itself included.
	LinkedTaskID *uint64 `json:"linked_task_id"`
	// CreatedByAdmin captures the creator's role at creation time and is
	// never recomputed, even if the creator's role changes later.
	CreatedByAdmin bool       `gorm:"not null;default:false" json:"created_by_admin"`
	IsDeleted      bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DoneAt         *time.Time `json:"done_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator  User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
