// Package database describes the target relational backend for the clinical
// store: a declarative schema with cascading foreign keys, check constraints
// mirroring the domain enums, and trigger-based audit logging. It is driven
// by the migrate command only; the runtime API serves from the in-memory
// store.
package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mediflow-ai/mediflow/internal/config"
	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/domain/appointment"
	"github.com/mediflow-ai/mediflow/internal/domain/note"
	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/domain/task"
	"github.com/mediflow-ai/mediflow/internal/domain/workflow"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "auth", "audit"} // logical namespaces
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditEntry{},
		&patient.Patient{},
		&patient.Allergy{},
		&patient.ChronicCondition{},
		&note.ClinicalNote{},
		&task.Task{},
		&appointment.Appointment{},
		&referral.Referral{},
		&workflow.Template{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	applyConstraints(db)

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// applyConstraints layers the declarative contract on top of the generated
// tables: cascading deletes from patients, enum check constraints, and the
// audit trigger. Statements are idempotent where postgres allows; duplicates
// on re-run are ignored.
func applyConstraints(db *gorm.DB) {
	statements := []string{
		`ALTER TABLE clinical.allergies
			ADD CONSTRAINT fk_allergies_patient FOREIGN KEY (patient_id)
			REFERENCES clinical.patients (id) ON DELETE CASCADE`,
		`ALTER TABLE clinical.chronic_conditions
			ADD CONSTRAINT fk_conditions_patient FOREIGN KEY (patient_id)
			REFERENCES clinical.patients (id) ON DELETE CASCADE`,
		`ALTER TABLE clinical.clinical_notes
			ADD CONSTRAINT fk_notes_patient FOREIGN KEY (patient_id)
			REFERENCES clinical.patients (id) ON DELETE CASCADE`,
		`ALTER TABLE clinical.appointments
			ADD CONSTRAINT fk_appointments_patient FOREIGN KEY (patient_id)
			REFERENCES clinical.patients (id) ON DELETE CASCADE`,
		`ALTER TABLE clinical.referrals
			ADD CONSTRAINT fk_referrals_patient FOREIGN KEY (patient_id)
			REFERENCES clinical.patients (id) ON DELETE CASCADE`,

		`ALTER TABLE clinical.patients
			ADD CONSTRAINT chk_patient_status CHECK (status IN ('active', 'inactive', 'deceased'))`,
		`ALTER TABLE clinical.allergies
			ADD CONSTRAINT chk_allergy_severity CHECK (severity IN ('mild', 'moderate', 'severe', 'life_threatening'))`,
		`ALTER TABLE clinical.clinical_notes
			ADD CONSTRAINT chk_note_status CHECK (status IN ('draft', 'final', 'amended', 'signed'))`,
		`ALTER TABLE clinical.tasks
			ADD CONSTRAINT chk_task_status CHECK (status IN ('pending', 'in_progress', 'completed', 'cancelled'))`,
		`ALTER TABLE clinical.tasks
			ADD CONSTRAINT chk_task_priority CHECK (priority IN ('low', 'medium', 'high', 'urgent'))`,
		`ALTER TABLE clinical.appointments
			ADD CONSTRAINT chk_appointment_status CHECK (status IN ('scheduled', 'confirmed', 'completed', 'cancelled', 'no_show'))`,
		`ALTER TABLE clinical.referrals
			ADD CONSTRAINT chk_referral_status CHECK (status IN ('pending', 'scheduled', 'completed', 'cancelled'))`,

		`CREATE INDEX IF NOT EXISTS idx_notes_patient_created
			ON clinical.clinical_notes (patient_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_upcoming
			ON clinical.appointments (scheduled_at) WHERE status = 'scheduled'`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entity
			ON audit.entries (entity_type, entity_id, occurred_at DESC)`,

		`CREATE OR REPLACE FUNCTION audit.log_patient_change() RETURNS trigger AS $$
		BEGIN
			INSERT INTO audit.entries (occurred_at, entity_type, entity_id, action, actor)
			VALUES (now(), 'patient', COALESCE(NEW.id, OLD.id), upper(TG_OP), 'trigger');
			RETURN COALESCE(NEW, OLD);
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS trg_patients_audit ON clinical.patients`,
		`CREATE TRIGGER trg_patients_audit
			AFTER INSERT OR UPDATE OR DELETE ON clinical.patients
			FOR EACH ROW EXECUTE FUNCTION audit.log_patient_change()`,
	}

	for _, stmt := range statements {
		// Re-running ALTER TABLE ADD CONSTRAINT on an existing constraint
		// fails; that is expected on repeat migrations.
		_ = db.Exec(stmt).Error
	}
}
