package note

import "time"

// NoteType is advisory: the well-known values below are what the UI offers,
// but free-form types are accepted and stored as-is.
type NoteType string

const (
	TypeSOAP         NoteType = "soap"
	TypeProgress     NoteType = "progress"
	TypeAssessment   NoteType = "assessment"
	TypeConsultation NoteType = "consultation"
	TypeProcedure    NoteType = "procedure"
	TypeDischarge    NoteType = "discharge"
	TypeAdmission    NoteType = "admission"
)

// State transitions:
//
//	draft → final → amended | signed
//
// amended and signed are not mutually exclusive terminal states; a note may
// move freely between them.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusFinal   Status = "final"
	StatusAmended Status = "amended"
	StatusSigned  Status = "signed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusFinal, StatusAmended, StatusSigned:
		return true
	}
	return false
}

type ClinicalNote struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID string   `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	Type      NoteType `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Content   string   `gorm:"column:content;type:text" json:"content"`
	Status    Status   `gorm:"column:status;type:varchar(20);default:'draft';index" json:"status"`

	// AIGenerated marks notes drafted by the documentation assistant rather
	// than typed by a clinician.
	AIGenerated bool   `gorm:"column:ai_generated;default:false;index" json:"ai_generated"`
	CreatedBy   string `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
}

func (ClinicalNote) TableName() string {
	return "clinical.clinical_notes"
}

func (n *ClinicalNote) CanTransitionTo(newStatus Status) bool {
	if newStatus == n.Status {
		return true
	}
	allowed := map[Status][]Status{
		StatusDraft:   {StatusFinal},
		StatusFinal:   {StatusAmended, StatusSigned},
		StatusAmended: {StatusSigned},
		StatusSigned:  {StatusAmended},
	}
	for _, s := range allowed[n.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

type CreateNoteCommand struct {
	PatientID   string
	Type        NoteType
	Content     string
	Status      Status // defaults to draft when empty
	AIGenerated bool
	CreatedBy   string
}

// UpdateNoteCommand applies a shallow merge: only set fields overwrite the
// stored record.
type UpdateNoteCommand struct {
	Type    *NoteType
	Content *string
	Status  *Status
}
