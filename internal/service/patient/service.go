package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/rbac"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
)

type Service struct {
	repo    repository.PatientRepository
	cipher  security.Encryptor
	auditor *audit.Service
}

func NewService(repo repository.PatientRepository, cipher security.Encryptor, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		cipher:  cipher,
		auditor: auditor,
	}
}

// Create adds a patient with all derived fields computed at insert time.
// The pseudonym is derived from the assigned id inside the repository
// transaction, so the stored pseudonym always reflects the final id.
func (s *Service) Create(ctx context.Context, sess *model.Session, req *model.CreatePatientRequest) (*model.Patient, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermWritePatient) {
		return nil, apperrors.Forbidden("role may not add patients")
	}
	if err := validateFields(req.Name, req.Contact, req.Diagnosis); err != nil {
		return nil, err
	}

	encName, err := s.cipher.Encrypt(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt name: %w", err)
	}
	encContact, err := s.cipher.Encrypt(req.Contact)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt contact: %w", err)
	}

	patient := &model.Patient{
		Name:              req.Name,
		Contact:           req.Contact,
		Diagnosis:         req.Diagnosis,
		AnonymizedContact: security.MaskContact(req.Contact),
		EncryptedName:     encName,
		EncryptedContact:  encContact,
		DateAdded:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, patient, security.MaskName); err != nil {
		return nil, err
	}

	if err := s.auditor.Log(ctx, sess.User, model.ActionAddPatient, fmt.Sprintf("Added patient ID %d", patient.ID)); err != nil {
		return nil, err
	}
	return patient, nil
}

// Update overwrites the raw fields and re-derives the anonymized ones.
// Encrypted fields are refreshed on the next anonymize pass, as in the
// reference behavior.
func (s *Service) Update(ctx context.Context, sess *model.Session, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermWritePatient) {
		return nil, apperrors.Forbidden("role may not update patients")
	}
	if err := validateFields(req.Name, req.Contact, req.Diagnosis); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.Name = req.Name
	patient.Contact = req.Contact
	patient.Diagnosis = req.Diagnosis
	patient.AnonymizedName = security.MaskName(id)
	patient.AnonymizedContact = security.MaskContact(req.Contact)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	if err := s.auditor.Log(ctx, sess.User, model.ActionUpdatePatient, fmt.Sprintf("Updated patient ID %d", id)); err != nil {
		return nil, err
	}
	return patient, nil
}

// List returns role-gated projections of all patients in id order. Raw
// view requires the raw-data capability; everything else gets the
// anonymized projection or nothing.
func (s *Service) List(ctx context.Context, sess *model.Session, raw bool) ([]model.PatientView, error) {
	role := sess.User.Role

	var (
		perm   rbac.Permission
		action string
		detail string
	)
	if raw {
		perm, action, detail = rbac.PermViewRawData, model.ActionViewRawData, "Viewed raw patient data"
	} else {
		perm, action, detail = rbac.PermViewAnonymizedData, model.ActionViewAnonymizedData, "Viewed anonymized patient data"
	}
	if !rbac.Allowed(role, perm) {
		return nil, apperrors.Forbidden("role may not view patient records")
	}

	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.PatientView, 0, len(patients))
	for _, p := range patients {
		if raw {
			views = append(views, p.RawView())
		} else {
			views = append(views, p.AnonymizedView())
		}
	}

	if err := s.auditor.Log(ctx, sess.User, action, detail); err != nil {
		return nil, err
	}
	return views, nil
}

// Export returns the full records for CSV download. Admin only.
func (s *Service) Export(ctx context.Context, sess *model.Session) ([]*model.Patient, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermExportData) {
		return nil, apperrors.Forbidden("export is admin only")
	}

	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.auditor.Log(ctx, sess.User, model.ActionExportCSV, "Exported patient records"); err != nil {
		return nil, err
	}
	return patients, nil
}

// AnonymizeAll recomputes the anonymized and encrypted fields of every
// patient from its current raw fields. Each record updates atomically;
// a failure mid-pass leaves earlier records updated and later ones
// untouched, which is safe because the pass is idempotent.
func (s *Service) AnonymizeAll(ctx context.Context, sess *model.Session) (int, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermAnonymize) {
		return 0, apperrors.Forbidden("anonymization is admin only")
	}

	patients, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range patients {
		encName, err := s.cipher.Encrypt(p.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to encrypt name for patient %d: %w", p.ID, err)
		}
		encContact, err := s.cipher.Encrypt(p.Contact)
		if err != nil {
			return 0, fmt.Errorf("failed to encrypt contact for patient %d: %w", p.ID, err)
		}

		if err := s.repo.UpdateDerived(ctx, p.ID,
			security.MaskName(p.ID),
			security.MaskContact(p.Contact),
			encName,
			encContact,
		); err != nil {
			return 0, err
		}
	}

	if err := s.auditor.Log(ctx, sess.User, model.ActionAnonymizeAll, "Batch anonymization applied with encryption"); err != nil {
		return 0, err
	}
	return len(patients), nil
}

// Decrypt recovers the raw name and contact from a record's encrypted
// fields. Admin only; a key or ciphertext mismatch surfaces as a
// decryption failure, never as garbage output.
func (s *Service) Decrypt(ctx context.Context, sess *model.Session, id int64) (*model.DecryptedPatient, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermAnonymize) {
		return nil, apperrors.Forbidden("decryption is admin only")
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.cipher.Decrypt(patient.EncryptedName)
	if err != nil {
		return nil, apperrors.Decryption(err)
	}
	contact, err := s.cipher.Decrypt(patient.EncryptedContact)
	if err != nil {
		return nil, apperrors.Decryption(err)
	}

	if err := s.auditor.Log(ctx, sess.User, model.ActionDecryptData, fmt.Sprintf("Decrypted patient ID %d", id)); err != nil {
		return nil, err
	}

	return &model.DecryptedPatient{
		ID:      id,
		Name:    name,
		Contact: contact,
	}, nil
}

func validateFields(name, contact, diagnosis string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(contact) == "" || strings.TrimSpace(diagnosis) == "" {
		return apperrors.Validation("name, contact and diagnosis are required", nil)
	}
	return nil
}
