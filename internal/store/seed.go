package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
)

// Seed loads a small demo dataset for sandbox environments: two patients
// with a few dependent records and the standard workflow-template catalog.
func (s *Memory) Seed(ctx context.Context) error {
	patients := []*patient.Patient{
		{
			FirstName:   "Maria",
			LastName:    "Santos",
			DateOfBirth: "1984-03-12",
			Gender:      patient.GenderFemale,
			BloodType:   patient.BloodTypeOPos,
			ContactInfo: patient.ContactInfo{
				Phone: "+1-555-0134",
				Email: "maria.santos@example.com",
			},
		},
		{
			FirstName:   "James",
			LastName:    "Okafor",
			DateOfBirth: "1972-11-02",
			Gender:      patient.GenderMale,
			BloodType:   patient.BloodTypeABNeg,
			ContactInfo: patient.ContactInfo{
				Phone: "+1-555-0178",
				Email: "james.okafor@example.com",
			},
		},
	}
	for _, p := range patients {
		if err := s.Patients().Create(ctx, p); err != nil {
			return fmt.Errorf("seeding patient %s: %w", p.FullName(), err)
		}
	}

	allergies := []*patient.Allergy{
		{PatientID: patients[0].ID, Allergen: "Penicillin", Reaction: "Hives", Severity: patient.SeverityModerate},
		{PatientID: patients[1].ID, Allergen: "Peanuts", Reaction: "Anaphylaxis", Severity: patient.SeverityLifeThreatening},
	}
	for _, a := range allergies {
		if err := s.Allergies().Add(ctx, a); err != nil {
			return fmt.Errorf("seeding allergy: %w", err)
		}
	}

	if err := s.Conditions().Add(ctx, &patient.ChronicCondition{
		PatientID:     patients[1].ID,
		Condition:     "Type 2 Diabetes",
		DiagnosisDate: "2019-06-20",
	}); err != nil {
		return fmt.Errorf("seeding condition: %w", err)
	}

	if err := s.Notes().Create(ctx, &note.ClinicalNote{
		PatientID: patients[0].ID,
		Type:      note.TypeSOAP,
		Content:   "S: Patient reports mild headache.\nO: Vitals stable.\nA: Tension headache.\nP: Hydration, follow up in two weeks.",
		CreatedBy: "dr.reyes",
	}); err != nil {
		return fmt.Errorf("seeding note: %w", err)
	}

	if err := s.Tasks().Create(ctx, &task.Task{
		PatientID: patients[0].ID,
		Title:     "Review lab panel",
		Priority:  task.PriorityHigh,
		DueDate:   time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
	}); err != nil {
		return fmt.Errorf("seeding task: %w", err)
	}

	templates := []*workflow.Template{
		{Name: "Annual Physical", Description: "Comprehensive yearly exam workflow", Category: "preventive", StepCount: 8, ChecklistCount: 14},
		{Name: "Diabetes Follow-up", Description: "Quarterly diabetes management visit", Category: "chronic_care", StepCount: 6, ChecklistCount: 10},
		{Name: "Hospital Discharge", Description: "Discharge summary and handoff", Category: "transitions", StepCount: 5, ChecklistCount: 9},
	}
	for _, t := range templates {
		if err := s.Templates().Create(ctx, t); err != nil {
			return fmt.Errorf("seeding template %s: %w", t.Name, err)
		}
	}

	return nil
}
