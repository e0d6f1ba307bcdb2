package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

// Create inserts the patient and fills in its id-derived pseudonym before
// commit. The row insert and the pseudonym write share one transaction,
// so no reader ever sees a placeholder pseudonym.
func (r *patientRepository) Create(ctx context.Context, patient *model.Patient, pseudonym func(id int64) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	insert := `
        INSERT INTO patients (
            name, contact, diagnosis,
            anonymized_name, anonymized_contact,
            encrypted_name, encrypted_contact, date_added
        ) VALUES (?, ?, ?, '', ?, ?, ?, ?)
    `
	res, err := tx.ExecContext(ctx, insert,
		patient.Name,
		patient.Contact,
		patient.Diagnosis,
		patient.AnonymizedContact,
		patient.EncryptedName,
		patient.EncryptedContact,
		patient.DateAdded,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assigned id: %w", err)
	}

	anonName := pseudonym(id)
	if _, err := tx.ExecContext(ctx,
		`UPDATE patients SET anonymized_name = ? WHERE patient_id = ?`,
		anonName, id,
	); err != nil {
		return fmt.Errorf("failed to set pseudonym: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit patient: %w", err)
	}

	patient.ID = id
	patient.AnonymizedName = anonName
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	query := `SELECT * FROM patients WHERE patient_id = ?`
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
        UPDATE patients
        SET name = ?, contact = ?, diagnosis = ?,
            anonymized_name = ?, anonymized_contact = ?
        WHERE patient_id = ?
    `
	res, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Contact,
		patient.Diagnosis,
		patient.AnonymizedName,
		patient.AnonymizedContact,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	query := `SELECT * FROM patients ORDER BY patient_id`
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) UpdateDerived(ctx context.Context, id int64, anonName, anonContact, encName, encContact string) error {
	query := `
        UPDATE patients
        SET anonymized_name = ?, anonymized_contact = ?,
            encrypted_name = ?, encrypted_contact = ?
        WHERE patient_id = ?
    `
	res, err := r.db.ExecContext(ctx, query, anonName, anonContact, encName, encContact, id)
	if err != nil {
		return fmt.Errorf("failed to update derived fields: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}
