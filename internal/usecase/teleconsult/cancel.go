package teleconsult

import (
	"context"
	"errors"

	"github.com/salustele/teleconsult-api/internal/audit"
	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
	"github.com/salustele/teleconsult-api/internal/redisclient"
	"github.com/salustele/teleconsult-api/internal/timezone"
)

type CancelAppointment struct {
	repo   domain.Repository
	locker redisclient.Locker
	audit  auditSink
}

func NewCancelAppointment(
	repo domain.Repository,
	locker redisclient.Locker,
	audit auditSink,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorRole string,
) (*models.Appointment, error) {

	var canceled *models.Appointment

	err := uc.locker.WithAppointmentLock(ctx, appointmentID, func(ctx context.Context) error {
		return uc.repo.WithTx(ctx, func(r domain.Repository) error {

			ap, err := r.GetAppointmentForUpdate(ctx, appointmentID)
			if err != nil {
				return err
			}

			acc, err := r.ResolveAccess(ctx, ap)
			if err != nil {
				return err
			}
			if actorRole != domain.RoleDoctor || !domain.CanAccess(actorRole, actorID, acc) {
				return httperr.ErrBusiness("access_denied")
			}

			if err := domain.Cancel(ap); err != nil {
				return err
			}

			if err := r.UpdateAppointment(ctx, ap); err != nil {
				return err
			}

			canceled = ap
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, httperr.ErrBusiness("session_busy")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AppointmentID: appointmentID,
		Action:        domain.ActionCanceled,
		ActorID:       actorID,
		At:            timezone.Now(),
	})

	return canceled, nil
}
