package authz

import (
	"github.com/careops/hospital-api/internal/model"
)

// Decision is the outcome of a permission check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Ownership carries actor and record identity for self-scoped resources.
// Zero value means "no ownership context supplied".
type Ownership struct {
	ActorName string
	OwnerName string
}

// Service evaluates the static permission rule table. It is deterministic
// and side-effect-free: the same inputs always produce the same decision.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Evaluate returns Allow only when an explicit rule matches (fail-closed).
// global_admin is a superuser and passes every check. For self-scoped
// resources a general_user additionally needs the record to name them.
func (s *Service) Evaluate(role model.Role, resource Resource, own Ownership) Decision {
	if !role.Valid() {
		return Deny
	}
	if role == model.RoleGlobalAdmin {
		return Allow
	}

	allowed, ok := ruleTable[resource]
	if !ok {
		return Deny
	}

	for _, r := range allowed {
		if r != role {
			continue
		}
		if role == model.RoleGeneralUser && selfScoped[resource] && own != (Ownership{}) {
			if own.ActorName != own.OwnerName {
				return Deny
			}
		}
		return Allow
	}
	return Deny
}

// AllowedRoles returns the full role set admitted to a resource, including
// the implicit global_admin. The route gate declares its guards with this,
// so gate and evaluator share one table.
func (s *Service) AllowedRoles(resource Resource) []model.Role {
	roles := []model.Role{model.RoleGlobalAdmin}
	roles = append(roles, ruleTable[resource]...)
	return roles
}

// SelfScoped reports whether general_user access to the resource is
// restricted to the actor's own records.
func (s *Service) SelfScoped(resource Resource) bool {
	return selfScoped[resource]
}

// FilterStats blanks every snapshot field outside the role's scope.
func (s *Service) FilterStats(role model.Role, snap model.StatsSnapshot) model.OverviewStats {
	scope := statsFields[role]
	var out model.OverviewStats
	if scope.Income {
		v := snap.Income
		out.Income = &v
	}
	if scope.Patients {
		v := snap.PatientCount
		out.PatientCount = &v
	}
	if scope.Doctors {
		v := snap.DoctorCount
		out.DoctorCount = &v
	}
	if scope.Meds {
		v := snap.MedicineKind
		out.MedicineKind = &v
	}
	return out
}

// Resources lists every resource with a declared rule, for table-equality
// checks and route registration.
func (s *Service) Resources() []Resource {
	out := make([]Resource, 0, len(ruleTable))
	for res := range ruleTable {
		out = append(out, res)
	}
	return out
}
