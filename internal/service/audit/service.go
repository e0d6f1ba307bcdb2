package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/rbac"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
)

var entriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "hospital_audit_entries_total",
	Help: "Audit log entries appended, by action.",
}, []string{"action"})

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log appends one accountability entry with a server-assigned timestamp.
// Callers invoke it only after the operation in question succeeded.
// A storage failure here is propagated unmodified; there is no point
// continuing without the audit trail.
func (s *Service) Log(ctx context.Context, actor model.User, action, detail string) error {
	entry := &model.AuditLog{
		Username:  actor.Username,
		Role:      actor.Role,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	entriesTotal.WithLabelValues(action).Inc()
	return nil
}

// List returns the audit trail in insertion order. Admin only; reading
// the trail is itself audited.
func (s *Service) List(ctx context.Context, sess *model.Session, filter model.AuditFilter) ([]*model.AuditLog, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermViewAuditLog) {
		return nil, apperrors.Forbidden("audit log is admin only")
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	if err := s.Log(ctx, sess.User, model.ActionViewAuditLog, "Accessed audit logs"); err != nil {
		return nil, err
	}
	return logs, nil
}

// Export returns the full trail for CSV download. Admin only.
func (s *Service) Export(ctx context.Context, sess *model.Session) ([]*model.AuditLog, error) {
	if !rbac.Allowed(sess.User.Role, rbac.PermExportData) {
		return nil, apperrors.Forbidden("export is admin only")
	}

	logs, err := s.repo.List(ctx, model.AuditFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to export audit logs: %w", err)
	}

	if err := s.Log(ctx, sess.User, model.ActionExportCSV, "Exported audit logs"); err != nil {
		return nil, err
	}
	return logs, nil
}
