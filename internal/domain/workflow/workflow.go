package workflow

import "time"

// Template is a reusable documentation workflow: an ordered set of steps with
// an attached checklist. UsageCount tracks how many times clinicians have
// instantiated it.
type Template struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name        string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Category    string `gorm:"column:category;type:varchar(100);index" json:"category"`

	StepCount      int `gorm:"column:step_count;default:0" json:"step_count"`
	ChecklistCount int `gorm:"column:checklist_count;default:0" json:"checklist_count"`
	UsageCount     int `gorm:"column:usage_count;default:0" json:"usage_count"`
}

func (Template) TableName() string {
	return "clinical.workflow_templates"
}

type CreateTemplateCommand struct {
	Name           string
	Description    string
	Category       string
	StepCount      int
	ChecklistCount int
}
