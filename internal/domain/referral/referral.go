package referral

import "time"

// State transitions:
//
//	pending → scheduled → completed
//	pending | scheduled → cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Referral struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID  string `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	Specialist string `gorm:"column:specialist;type:varchar(255);not null" json:"specialist"`
	Reason     string `gorm:"column:reason;type:text" json:"reason"`
	Status     Status `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
}

func (Referral) TableName() string {
	return "clinical.referrals"
}

type CreateReferralCommand struct {
	PatientID  string
	Specialist string
	Reason     string
	Status     Status // defaults to pending when empty
}

// UpdateReferralCommand applies a shallow merge: only set fields overwrite
// the stored record.
type UpdateReferralCommand struct {
	Specialist *string
	Reason     *string
	Status     *Status
}
