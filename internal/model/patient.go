package model

import (
	"time"
)

// Patient holds the raw identifying fields alongside the derived
// pseudonymized and encrypted forms. AnonymizedName is a function of the
// assigned id, never of the real name.
type Patient struct {
	ID                int64     `db:"patient_id" json:"patient_id" csv:"patient_id"`
	Name              string    `db:"name" json:"name" csv:"name"`
	Contact           string    `db:"contact" json:"contact" csv:"contact"`
	Diagnosis         string    `db:"diagnosis" json:"diagnosis" csv:"diagnosis"`
	AnonymizedName    string    `db:"anonymized_name" json:"anonymized_name" csv:"anonymized_name"`
	AnonymizedContact string    `db:"anonymized_contact" json:"anonymized_contact" csv:"anonymized_contact"`
	EncryptedName     string    `db:"encrypted_name" json:"-" csv:"encrypted_name"`
	EncryptedContact  string    `db:"encrypted_contact" json:"-" csv:"encrypted_contact"`
	DateAdded         time.Time `db:"date_added" json:"date_added" csv:"date_added"`
}

// PatientView is the role-dependent projection of a patient record.
type PatientView struct {
	ID        int64     `json:"patient_id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Diagnosis string    `json:"diagnosis"`
	DateAdded time.Time `json:"date_added"`
}

// RawView exposes the identifying fields. Admin only.
func (p *Patient) RawView() PatientView {
	return PatientView{
		ID:        p.ID,
		Name:      p.Name,
		Contact:   p.Contact,
		Diagnosis: p.Diagnosis,
		DateAdded: p.DateAdded,
	}
}

// AnonymizedView substitutes the derived pseudonymous fields.
func (p *Patient) AnonymizedView() PatientView {
	return PatientView{
		ID:        p.ID,
		Name:      p.AnonymizedName,
		Contact:   p.AnonymizedContact,
		Diagnosis: p.Diagnosis,
		DateAdded: p.DateAdded,
	}
}

// DecryptedPatient is the result of an admin decrypting a record's
// encrypted fields.
type DecryptedPatient struct {
	ID      int64  `json:"patient_id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact" binding:"required,contact"`
	Diagnosis string `json:"diagnosis" binding:"required"`
}

// UpdatePatientRequest represents patient update parameters
type UpdatePatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact" binding:"required,contact"`
	Diagnosis string `json:"diagnosis" binding:"required"`
}
