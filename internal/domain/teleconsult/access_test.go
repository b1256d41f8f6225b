package teleconsult

import (
	"testing"

	"github.com/salustele/teleconsult-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCanAccessDoctor(t *testing.T) {
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1},
		DoctorOwnerUserID: 10,
	}

	if !CanAccess(RoleDoctor, 10, in) {
		t.Error("owning doctor denied")
	}
	if CanAccess(RoleDoctor, 11, in) {
		t.Error("other doctor allowed")
	}
}

func TestCanAccessDirectPatient(t *testing.T) {
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, PatientUserID: uintPtr(20)},
		DoctorOwnerUserID: 10,
	}

	if !CanAccess(RolePatient, 20, in) {
		t.Error("referenced patient denied")
	}
	if CanAccess(RolePatient, 21, in) {
		t.Error("unrelated patient allowed")
	}
	if CanAccess(RolePatient, 10, in) {
		t.Error("doctor's user id allowed under patient role")
	}
}

func TestCanAccessTitularBeneficiary(t *testing.T) {
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, BeneficiaryID: uintPtr(5)},
		DoctorOwnerUserID: 10,
		Beneficiary:       &BeneficiaryOwner{OwnerUserID: 30},
	}

	if !CanAccess(RolePatient, 30, in) {
		t.Error("titular owner denied")
	}
	if CanAccess(RolePatient, 31, in) {
		t.Error("stranger allowed")
	}
}

func TestCanAccessDependentViaPrincipal(t *testing.T) {
	// Dependent owned by user 40, principal owned by user 30.
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, BeneficiaryID: uintPtr(6)},
		DoctorOwnerUserID: 10,
		Beneficiary: &BeneficiaryOwner{
			OwnerUserID:          40,
			PrincipalOwnerUserID: uintPtr(30),
		},
	}

	if !CanAccess(RolePatient, 40, in) {
		t.Error("dependent's own user denied")
	}
	if !CanAccess(RolePatient, 30, in) {
		t.Error("principal's user denied")
	}
	if CanAccess(RolePatient, 50, in) {
		t.Error("unrelated user allowed")
	}
}

func TestCanAccessSiblingDependentDenied(t *testing.T) {
	// A sibling dependent shares the principal but not this beneficiary.
	// Its own user id (41) grants nothing on a sibling's appointment.
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, BeneficiaryID: uintPtr(6)},
		DoctorOwnerUserID: 10,
		Beneficiary: &BeneficiaryOwner{
			OwnerUserID:          40,
			PrincipalOwnerUserID: uintPtr(30),
		},
	}

	if CanAccess(RolePatient, 41, in) {
		t.Error("sibling dependent allowed")
	}
}

func TestCanAccessMissingBeneficiaryResolution(t *testing.T) {
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, BeneficiaryID: uintPtr(5)},
		DoctorOwnerUserID: 10,
		Beneficiary:       nil,
	}

	if CanAccess(RolePatient, 30, in) {
		t.Error("access granted without resolved beneficiary")
	}
}

func TestCanAccessUnknownRole(t *testing.T) {
	in := AccessInput{
		Appointment:       &models.Appointment{ID: 1, PatientUserID: uintPtr(20)},
		DoctorOwnerUserID: 10,
	}

	if CanAccess("receptionist", 20, in) {
		t.Error("unknown role allowed")
	}
	if CanAccess(RoleAdmin, 20, in) {
		t.Error("admin role allowed on session access")
	}
	if CanAccess("", 10, in) {
		t.Error("empty role allowed")
	}
}
