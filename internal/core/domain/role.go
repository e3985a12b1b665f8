package domain

// Role defines the closed set of user roles known to the workflow engine.
// Only employee, manager, hr and finance participate in stage transitions;
// admin and system_admin have read/override visibility across pending queues.
type Role string

const (
	RoleEmployee    Role = "employee"
	RoleManager     Role = "manager"
	RoleHR          Role = "hr"
	RoleFinance     Role = "finance"
	RoleAdmin       Role = "admin"
	RoleSystemAdmin Role = "system_admin"
)

// stageForRole maps each approver role to the pending stage it owns.
// Adding a role is a single edit here, not a grep across the codebase.
var stageForRole = map[Role]ClaimStage{
	RoleManager: StagePendingManager,
	RoleHR:      StagePendingHR,
	RoleFinance: StagePendingFinance,
}

// roleForStage is the inverse of stageForRole.
var roleForStage = map[ClaimStage]Role{
	StagePendingManager: RoleManager,
	StagePendingHR:      RoleHR,
	StagePendingFinance: RoleFinance,
}

// IsValid reports whether the role is one of the defined enum values.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleFinance, RoleAdmin, RoleSystemAdmin:
		return true
	}
	return false
}

// IsAggregate reports whether the role sees the union of all pending queues.
func (r Role) IsAggregate() bool {
	return r == RoleAdmin || r == RoleSystemAdmin
}

// StageForRole returns the pending stage owned by the given approver role.
// The second return is false for roles not bound to a stage.
func StageForRole(r Role) (ClaimStage, bool) {
	s, ok := stageForRole[r]
	return s, ok
}

// RoleForStage returns the approver role responsible for a pending stage.
// The second return is false for non-pending stages.
func RoleForStage(s ClaimStage) (Role, bool) {
	r, ok := roleForStage[s]
	return r, ok
}

// CanActOn reports whether the role is the approver bound to the given stage.
func (r Role) CanActOn(stage ClaimStage) bool {
	s, ok := stageForRole[r]
	return ok && s == stage
}
