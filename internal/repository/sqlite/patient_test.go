package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newPatient(name, contact, diagnosis string) *model.Patient {
	return &model.Patient{
		Name:              name,
		Contact:           contact,
		Diagnosis:         diagnosis,
		AnonymizedContact: security.MaskContact(contact),
		EncryptedName:     "enc-name",
		EncryptedContact:  "enc-contact",
		DateAdded:         time.Now().UTC(),
	}
}

func TestCreateAssignsPseudonymFromFinalID(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))
	ctx := context.Background()

	first := newPatient("Jane Doe", "5551234567", "flu")
	require.NoError(t, repo.Create(ctx, first, security.MaskName))
	second := newPatient("John Roe", "5559876543", "cold")
	require.NoError(t, repo.Create(ctx, second, security.MaskName))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	// The stored pseudonym must reflect the assigned id, never a
	// placeholder.
	stored, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, security.MaskName(second.ID), stored.AnonymizedName)
	assert.Equal(t, "******6543", stored.AnonymizedContact)
}

func TestGetMissingPatient(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), 99)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateMissingPatient(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	err := repo.Update(context.Background(), &model.Patient{ID: 99, Name: "x", Contact: "5550000000", Diagnosis: "y"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateRewritesRawAndAnonymized(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))
	ctx := context.Background()

	p := newPatient("Jane Doe", "5551234567", "flu")
	require.NoError(t, repo.Create(ctx, p, security.MaskName))

	p.Name = "Jane Smith"
	p.Contact = "5550001111"
	p.AnonymizedContact = security.MaskContact(p.Contact)
	require.NoError(t, repo.Update(ctx, p))

	stored, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", stored.Name)
	assert.Equal(t, "******1111", stored.AnonymizedContact)
	// Encrypted fields are untouched by Update.
	assert.Equal(t, "enc-name", stored.EncryptedName)
}

func TestListInsertionOrder(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, newPatient(name, "5551234567", "dx"), security.MaskName))
	}

	patients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, int64(1), patients[0].ID)
	assert.Equal(t, int64(3), patients[2].ID)
}

func TestUpdateDerived(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))
	ctx := context.Background()

	p := newPatient("Jane Doe", "5551234567", "flu")
	require.NoError(t, repo.Create(ctx, p, security.MaskName))

	require.NoError(t, repo.UpdateDerived(ctx, p.ID, "Patient_1", "******4567", "new-enc-name", "new-enc-contact"))

	stored, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-enc-name", stored.EncryptedName)
	assert.Equal(t, "Jane Doe", stored.Name)

	err = repo.UpdateDerived(ctx, 99, "", "", "", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
