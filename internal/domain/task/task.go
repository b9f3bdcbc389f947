package task

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// State transitions:
//
//	pending → in_progress → completed | cancelled
//
// pending may also move straight to completed or cancelled. There is no
// transition out of completed or cancelled.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// PatientID is optional: administrative tasks are not tied to a patient.
	PatientID string   `gorm:"column:patient_id;type:uuid;index" json:"patient_id,omitempty"`
	Title     string   `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Priority  Priority `gorm:"column:priority;type:varchar(10);default:'medium'" json:"priority"`
	Status    Status   `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	DueDate   string   `gorm:"column:due_date;type:date" json:"due_date,omitempty"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CompletedBy string     `gorm:"column:completed_by;type:varchar(64)" json:"completed_by,omitempty"`
}

func (Task) TableName() string {
	return "clinical.tasks"
}

func (t *Task) CanTransitionTo(newStatus Status) bool {
	if newStatus == t.Status {
		return true
	}
	allowed := map[Status][]Status{
		StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
	for _, s := range allowed[t.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

type CreateTaskCommand struct {
	PatientID string
	Title     string
	Priority  Priority // defaults to medium when empty
	Status    Status   // defaults to pending when empty
	DueDate   string
}

// UpdateTaskCommand applies a shallow merge: only set fields overwrite the
// stored record. A merge that moves the status to completed stamps the
// completion metadata.
type UpdateTaskCommand struct {
	Title       *string
	Priority    *Priority
	Status      *Status
	DueDate     *string
	CompletedBy string
}
