package teleconsult

import (
	"context"
	"errors"

	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/redisclient"
	"github.com/salustele/teleconsult-api/internal/timezone"
)

// FinalizeSession ends a consultation: status goes to FINISHED, the registry
// row (if any) gets its end timestamp, and one FINISHED audit entry is
// appended. The three writes commit as a single transaction. Finalizing an
// already finished appointment succeeds without writing anything, so clients
// may call this redundantly from retries and unload handlers.
type FinalizeSession struct {
	repo   domain.Repository
	locker redisclient.Locker
}

func NewFinalizeSession(
	repo domain.Repository,
	locker redisclient.Locker,
) *FinalizeSession {
	return &FinalizeSession{
		repo:   repo,
		locker: locker,
	}
}

func (uc *FinalizeSession) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorRole string,
) error {

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

			alreadyFinished, err := domain.Finish(ap)
			if err != nil {
				return err
			}
			if alreadyFinished {
				return nil
			}

			now := timezone.Now()

			if err := r.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
			if err := r.EndSession(ctx, appointmentID, now); err != nil {
				return err
			}
			return r.AppendAudit(ctx, appointmentID, domain.ActionFinished, actorID, now)
		})
	})

	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return httperr.ErrBusiness("session_busy")
	}
	return err
}
