package patient

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type BloodType string

const (
	BloodTypeAPos    BloodType = "A+"
	BloodTypeANeg    BloodType = "A-"
	BloodTypeBPos    BloodType = "B+"
	BloodTypeBNeg    BloodType = "B-"
	BloodTypeABPos   BloodType = "AB+"
	BloodTypeABNeg   BloodType = "AB-"
	BloodTypeOPos    BloodType = "O+"
	BloodTypeONeg    BloodType = "O-"
	BloodTypeUnknown BloodType = "unknown"
)

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeceased Status = "deceased"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeceased:
		return true
	}
	return false
}

type ContactInfo struct {
	Phone   string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email   string `gorm:"column:email;type:varchar(255)" json:"email"`
	Address string `gorm:"column:address;type:text" json:"address"`
}

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Insurance struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
}

// Patient is the root of the clinical object graph. Allergies, chronic
// conditions, notes, tasks, appointments and referrals reference it by ID and
// are removed with it when it is deleted.
type Patient struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	DateOfBirth string    `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	Gender      Gender    `gorm:"column:gender;type:varchar(20)" json:"gender"`
	BloodType   BloodType `gorm:"column:blood_type;type:varchar(7)" json:"blood_type"`

	ContactInfo

	EmergencyContact *EmergencyContact `gorm:"column:emergency_contact;serializer:json" json:"emergency_contact,omitempty"`
	Insurance        *Insurance        `gorm:"column:insurance;serializer:json" json:"insurance,omitempty"`

	Status Status `gorm:"column:status;type:varchar(20);default:'active';index" json:"status"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Patient) IsActive() bool {
	return p.Status == StatusActive
}

// MatchesQuery reports whether the patient matches a case-insensitive
// substring search over first name, last name, identifier and email.
func (p *Patient) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{p.FirstName, p.LastName, p.ID, p.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

type AllergySeverity string

const (
	SeverityMild            AllergySeverity = "mild"
	SeverityModerate        AllergySeverity = "moderate"
	SeveritySevere          AllergySeverity = "severe"
	SeverityLifeThreatening AllergySeverity = "life_threatening"
)

func (s AllergySeverity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityLifeThreatening:
		return true
	}
	return false
}

type AllergyStatus string

const (
	AllergyActive     AllergyStatus = "active"
	AllergyResolved   AllergyStatus = "resolved"
	AllergyHistorical AllergyStatus = "historical"
)

type Allergy struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	PatientID string          `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	Allergen  string          `gorm:"column:allergen;type:varchar(255);not null" json:"allergen"`
	Reaction  string          `gorm:"column:reaction;type:text" json:"reaction"`
	Severity  AllergySeverity `gorm:"column:severity;type:varchar(20);not null" json:"severity"`
	Status    AllergyStatus   `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
}

func (Allergy) TableName() string {
	return "clinical.allergies"
}

type ConditionStatus string

const (
	ConditionActive      ConditionStatus = "active"
	ConditionResolved    ConditionStatus = "resolved"
	ConditionInRemission ConditionStatus = "in_remission"
)

type ChronicCondition struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	PatientID     string          `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	Condition     string          `gorm:"column:condition;type:varchar(255);not null" json:"condition"`
	DiagnosisDate string          `gorm:"column:diagnosis_date;type:date" json:"diagnosis_date"`
	Status        ConditionStatus `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
}

func (ChronicCondition) TableName() string {
	return "clinical.chronic_conditions"
}

type CreatePatientCommand struct {
	FirstName        string
	LastName         string
	DateOfBirth      string
	Gender           Gender
	BloodType        BloodType
	Phone            string
	Email            string
	Address          string
	EmergencyContact *EmergencyContact
	Insurance        *Insurance
}

// UpdatePatientCommand applies a shallow merge: only set fields overwrite the
// stored record.
type UpdatePatientCommand struct {
	FirstName        *string
	LastName         *string
	DateOfBirth      *string
	Gender           *Gender
	BloodType        *BloodType
	Phone            *string
	Email            *string
	Address          *string
	EmergencyContact *EmergencyContact
	Insurance        *Insurance
	Status           *Status
}

type AddAllergyCommand struct {
	PatientID string
	Allergen  string
	Reaction  string
	Severity  AllergySeverity
	Status    AllergyStatus
}

type AddConditionCommand struct {
	PatientID     string
	Condition     string
	DiagnosisDate string
	Status        ConditionStatus
}
