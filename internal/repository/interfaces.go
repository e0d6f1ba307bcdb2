package repository

import (
	"context"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
)

// UserRepository is the credential store. Users are seeded once and
// read-only afterwards.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

// PatientRepository persists patient records with their derived fields.
type PatientRepository interface {
	// Create inserts the record and assigns its id inside one
	// transaction. The pseudonym callback runs after the id is known and
	// before commit, so a stored row always carries the pseudonym of its
	// final id.
	Create(ctx context.Context, patient *model.Patient, pseudonym func(id int64) string) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	List(ctx context.Context) ([]*model.Patient, error)
	// UpdateDerived rewrites the anonymized and encrypted fields of a
	// single record atomically, leaving raw fields untouched.
	UpdateDerived(ctx context.Context, id int64, anonName, anonContact, encName, encContact string) error
}

// AuditRepository is append-only; entries are never updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error)
}
