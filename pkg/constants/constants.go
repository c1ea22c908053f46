package constants

// User roles, ordered by privilege.
const (
	RoleAdmin    = "admin"
	RoleIT       = "it"
	RoleSecurity = "security"
)

var roleHierarchy = map[string]int{
	RoleAdmin:    3,
	RoleIT:       2,
	RoleSecurity: 1,
}

// RoleAtLeast reports whether role grants the privileges of required.
func RoleAtLeast(role, required string) bool {
	return roleHierarchy[role] >= roleHierarchy[required]
}

// Audit actions. Stored as-is in the audit log, never renamed.
const (
	AuditActionUserLogin        = "user_login"
	AuditActionUserCreated      = "user_created"
	AuditActionUserUpdated      = "user_updated"
	AuditActionUserDeleted      = "user_deleted"
	AuditActionEquipmentCreated = "equipment_created"
	AuditActionEquipmentUpdated = "equipment_updated"
	AuditActionEquipmentDeleted = "equipment_deleted"
	AuditActionAccessEntry      = "access_entry"
	AuditActionAccessExit       = "access_exit"
	AuditActionAccessForcedExit = "access_forced_exit"
	AuditActionAccessBlocked    = "access_blocked"
	AuditActionAlertGenerated   = "alert_generated"
	AuditActionReportGenerated  = "report_generated"
)

// Audit entity types.
const (
	AuditEntityUser         = "user"
	AuditEntityEquipment    = "equipment"
	AuditEntityAccessRecord = "access_record"
	AuditEntityReport       = "report"
)
