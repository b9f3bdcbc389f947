package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist:
		return true
	}
	return false
}

// SystemActor is recorded on audit entries for mutations that carry no
// authenticated user.
const SystemActor = "system"

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName     string `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Role         Role   `gorm:"column:role;type:varchar(30);not null;index" json:"role"`

	IsActive    bool       `gorm:"column:is_active;default:true;index" json:"is_active"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "auth.users"
}

type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionRead   AuditAction = "READ"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

func (a AuditAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// AuditEntry is an append-only record of who changed what and when. Entries
// are assigned a sequential identifier and a wall-clock timestamp at append
// time; they are never mutated or deleted.
type AuditEntry struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OccurredAt time.Time   `gorm:"autoCreateTime;index" json:"occurred_at"`
	EntityType string      `gorm:"column:entity_type;type:varchar(50);not null;index" json:"entity_type"`
	EntityID   string      `gorm:"column:entity_id;type:varchar(64);index" json:"entity_id"`
	Action     AuditAction `gorm:"column:action;type:varchar(10);not null;index" json:"action"`
	Actor      string      `gorm:"column:actor;type:varchar(64);not null;index" json:"actor"`
	Changes    string      `gorm:"column:changes;type:jsonb" json:"changes,omitempty"`
}

func (AuditEntry) TableName() string {
	return "audit.entries"
}

// AuditFilter narrows audit-log reads. All set fields must match.
type AuditFilter struct {
	EntityType string
	EntityID   string
	Actor      string
}

// Statistics is a snapshot derived from the live store; it is recomputed on
// every call and never cached.
type Statistics struct {
	TotalPatients        int `json:"total_patients"`
	ActivePatients       int `json:"active_patients"`
	TotalClinicalNotes   int `json:"total_clinical_notes"`
	AIGeneratedNotes     int `json:"ai_generated_notes"`
	PendingTasks         int `json:"pending_tasks"`
	UpcomingAppointments int `json:"upcoming_appointments"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}
