package model

import (
	"time"
)

// Audit action tags. One entry per successful sensitive operation.
const (
	ActionLogin              = "LOGIN"
	ActionLogout             = "LOGOUT"
	ActionViewDashboard      = "VIEW_DASHBOARD"
	ActionViewRawData        = "VIEW_RAW_DATA"
	ActionViewAnonymizedData = "VIEW_ANONYMIZED_DATA"
	ActionAddPatient         = "ADD_PATIENT"
	ActionUpdatePatient      = "UPDATE_PATIENT"
	ActionAnonymizeAll       = "ANONYMIZE_ALL"
	ActionDecryptData        = "DECRYPT_DATA"
	ActionViewAuditLog       = "VIEW_AUDIT_LOG"
	ActionExportCSV          = "EXPORT_CSV"
)

// AuditLog is an append-only accountability record. Entries are never
// updated or deleted.
type AuditLog struct {
	ID        int64     `db:"id" json:"id" csv:"id"`
	Username  string    `db:"username" json:"username" csv:"username"`
	Role      Role      `db:"role" json:"role" csv:"role"`
	Action    string    `db:"action" json:"action" csv:"action"`
	Detail    string    `db:"detail" json:"detail" csv:"detail"`
	Timestamp time.Time `db:"timestamp" json:"timestamp" csv:"timestamp"`
}

// AuditFilter narrows audit log listings
type AuditFilter struct {
	Action string `form:"action"`
	Role   string `form:"role"`
}
