package appointment

import "time"

type AppointmentType string

const (
	TypeConsultation   AppointmentType = "consultation"
	TypeFollowUp       AppointmentType = "follow_up"
	TypeRoutineCheckup AppointmentType = "routine_checkup"
	TypeProcedure      AppointmentType = "procedure"
	TypeLabResults     AppointmentType = "lab_results"
)

// State transitions:
//
//	scheduled → confirmed → completed
//	scheduled | confirmed → cancelled
//	confirmed → no_show (if the patient doesn't arrive)
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID   string          `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	Type        AppointmentType `gorm:"column:type;type:varchar(50)" json:"type"`
	ScheduledAt time.Time       `gorm:"column:scheduled_at;not null;index" json:"scheduled_at"`
	Status      Status          `gorm:"column:status;type:varchar(20);default:'scheduled';index" json:"status"`

	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

// IsUpcoming reports whether the appointment is still scheduled for a moment
// strictly after now.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.Status == StatusScheduled && a.ScheduledAt.After(now)
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	if newStatus == a.Status {
		return true
	}
	allowed := map[Status][]Status{
		StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	}
	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

type CreateAppointmentCommand struct {
	PatientID   string
	Type        AppointmentType
	ScheduledAt time.Time
	Status      Status // defaults to scheduled when empty
}

// UpdateAppointmentCommand applies a shallow merge: only set fields overwrite
// the stored record. Transitions to cancelled or completed stamp the
// matching timestamp.
type UpdateAppointmentCommand struct {
	Type        *AppointmentType
	ScheduledAt *time.Time
	Status      *Status
}
