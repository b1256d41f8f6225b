package teleconsult

import (
	"context"

	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
)

// CheckAvailability answers whether a patient client may attempt to join.
// Read-only; designed to be polled until available or abandoned.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	appointmentID uint,
) (domain.Availability, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			return domain.CheckAvailability(false, "", false), nil
		}
		return domain.Availability{}, err
	}

	sess, err := uc.repo.GetSession(ctx, appointmentID)
	if err != nil {
		return domain.Availability{}, err
	}

	hasPeer := sess != nil && sess.DoctorPeerID != nil && *sess.DoctorPeerID != ""

	return domain.CheckAvailability(true, domain.Status(ap.Status), hasPeer), nil
}
