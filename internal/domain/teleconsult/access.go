package teleconsult

import "github.com/salustele/teleconsult-api/internal/models"

// ===============================
// Roles
// ===============================

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// BeneficiaryOwner is the flattened view of the beneficiary referenced by an
// appointment: who owns it, and, when it is a DEPENDENTE, who owns its
// principal. The repository resolves exactly one indirection level; a deeper
// chain cannot be expressed in this shape.
type BeneficiaryOwner struct {
	OwnerUserID          uint
	PrincipalOwnerUserID *uint
}

// AccessInput carries everything the guard needs, pre-resolved from storage.
type AccessInput struct {
	Appointment      *models.Appointment
	DoctorOwnerUserID uint
	Beneficiary      *BeneficiaryOwner
}

// CanAccess decides whether the actor may read or act on the appointment's
// session. Pure: no lookups, no side effects. A false result is a denial,
// never a not-found.
func CanAccess(actorRole string, actorID uint, in AccessInput) bool {
	switch actorRole {
	case RoleDoctor:
		return in.DoctorOwnerUserID == actorID

	case RolePatient:
		ap := in.Appointment
		if ap.PatientUserID != nil && *ap.PatientUserID == actorID {
			return true
		}
		if ap.BeneficiaryID != nil && in.Beneficiary != nil {
			if in.Beneficiary.OwnerUserID == actorID {
				return true
			}
			if in.Beneficiary.PrincipalOwnerUserID != nil &&
				*in.Beneficiary.PrincipalOwnerUserID == actorID {
				return true
			}
		}
		return false

	default:
		return false
	}
}
