package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careops/hospital-api/internal/model"
)

func TestGlobalAdminAlwaysAllowed(t *testing.T) {
	svc := NewService()

	for _, res := range svc.Resources() {
		assert.Equal(t, Allow, svc.Evaluate(model.RoleGlobalAdmin, res, Ownership{}),
			"global_admin must be allowed on %s", res)
	}

	// Even on a resource nobody declared.
	assert.Equal(t, Allow, svc.Evaluate(model.RoleGlobalAdmin, Resource("never:declared"), Ownership{}))
}

func TestFailClosedDefaults(t *testing.T) {
	svc := NewService()

	// No rule for the resource means deny for every non-superuser role.
	for _, role := range model.AllRoles {
		if role == model.RoleGlobalAdmin {
			continue
		}
		assert.Equal(t, Deny, svc.Evaluate(role, Resource("never:declared"), Ownership{}))
	}

	// An invalid role is denied everywhere.
	assert.Equal(t, Deny, svc.Evaluate(model.Role("intruder"), ResourceBookingsList, Ownership{}))
	assert.Equal(t, Deny, svc.Evaluate(model.Role(""), ResourceBookingsList, Ownership{}))
}

func TestRuleTableDecisions(t *testing.T) {
	svc := NewService()

	tests := []struct {
		role     model.Role
		resource Resource
		want     Decision
	}{
		{model.RoleRegistration, ResourceBookingsCreate, Allow},
		{model.RoleGeneralUser, ResourceBookingsCreate, Allow},
		{model.RoleDoctor, ResourceBookingsCreate, Deny},
		{model.RoleDoctor, ResourceBookingsAdvance, Allow},
		{model.RoleRegistration, ResourceBookingsAdvance, Deny},
		{model.RoleGeneralUser, ResourceBookingsAdvance, Deny},
		{model.RoleFinance, ResourcePaymentSettle, Allow},
		{model.RoleStorekeeper, ResourcePaymentSettle, Deny},
		{model.RoleStorekeeper, ResourceMedicinesList, Allow},
		{model.RoleFinance, ResourceMedicinesList, Deny},
		{model.RoleFinance, ResourceFinanceStats, Allow},
		{model.RoleDoctor, ResourceFinanceStats, Deny},
		{model.RoleOrgAdmin, ResourceUsersDelete, Allow},
		{model.RoleGeneralUser, ResourceUsersList, Deny},
		{model.RoleGeneralUser, ResourceStatsView, Deny},
	}

	for _, tt := range tests {
		got := svc.Evaluate(tt.role, tt.resource, Ownership{})
		assert.Equal(t, tt.want, got, "%s on %s", tt.role, tt.resource)
	}
}

func TestSelfScopedOwnership(t *testing.T) {
	svc := NewService()

	own := Ownership{ActorName: "Alice", OwnerName: "Alice"}
	foreign := Ownership{ActorName: "Alice", OwnerName: "Bob"}

	assert.Equal(t, Allow, svc.Evaluate(model.RoleGeneralUser, ResourcePaymentSettle, own))
	assert.Equal(t, Deny, svc.Evaluate(model.RoleGeneralUser, ResourcePaymentSettle, foreign))

	// Staff are not restricted by ownership on the same resource.
	assert.Equal(t, Allow, svc.Evaluate(model.RoleFinance, ResourcePaymentSettle, foreign))
	assert.Equal(t, Allow, svc.Evaluate(model.RoleGlobalAdmin, ResourcePaymentSettle, foreign))
}

// The route gate declares its guards via AllowedRoles; this pins the gate's
// role sets to the evaluator's decisions so the two tables cannot diverge.
func TestGateAndEvaluatorAgree(t *testing.T) {
	svc := NewService()

	for _, res := range svc.Resources() {
		allowed := make(map[model.Role]bool)
		for _, r := range svc.AllowedRoles(res) {
			allowed[r] = true
		}

		for _, role := range model.AllRoles {
			gateDecision := allowed[role]
			evalDecision := svc.Evaluate(role, res, Ownership{}) == Allow
			assert.Equal(t, evalDecision, gateDecision,
				"gate and evaluator disagree for %s on %s", role, res)
		}
	}
}

func TestFilterStats(t *testing.T) {
	svc := NewService()
	snap := model.StatsSnapshot{Income: 1234.5, PatientCount: 10, DoctorCount: 4, MedicineKind: 7}

	full := svc.FilterStats(model.RoleOrgAdmin, snap)
	assert.NotNil(t, full.Income)
	assert.NotNil(t, full.PatientCount)
	assert.NotNil(t, full.DoctorCount)
	assert.NotNil(t, full.MedicineKind)

	finance := svc.FilterStats(model.RoleFinance, snap)
	assert.NotNil(t, finance.Income)
	assert.Equal(t, 1234.5, *finance.Income)
	assert.Nil(t, finance.PatientCount)
	assert.Nil(t, finance.DoctorCount)
	assert.Nil(t, finance.MedicineKind)

	doctor := svc.FilterStats(model.RoleDoctor, snap)
	assert.Nil(t, doctor.Income)
	assert.NotNil(t, doctor.PatientCount)
	assert.NotNil(t, doctor.MedicineKind)

	storekeeper := svc.FilterStats(model.RoleStorekeeper, snap)
	assert.Nil(t, storekeeper.Income)
	assert.Nil(t, storekeeper.PatientCount)
	assert.NotNil(t, storekeeper.MedicineKind)

	patient := svc.FilterStats(model.RoleGeneralUser, snap)
	assert.Nil(t, patient.Income)
	assert.Nil(t, patient.PatientCount)
	assert.Nil(t, patient.DoctorCount)
	assert.Nil(t, patient.MedicineKind)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	svc := NewService()
	own := Ownership{ActorName: "Alice", OwnerName: "Bob"}

	for i := 0; i < 100; i++ {
		assert.Equal(t, Deny, svc.Evaluate(model.RoleGeneralUser, ResourcePaymentSettle, own))
		assert.Equal(t, Allow, svc.Evaluate(model.RoleDoctor, ResourceBookingsAdvance, Ownership{}))
	}
}
