package teleconsult

import (
	"context"
	"errors"
	"strings"

	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
	"github.com/salustele/teleconsult-api/internal/redisclient"
	"github.com/salustele/teleconsult-api/internal/timezone"
)

// RegisterDoctorPeer publishes the doctor's current relay peer id for an
// appointment. Safe to repeat: the registry row is created lazily on the
// first call and the peer id is overwritten on every later call, so exactly
// one id is current at any time. Does not touch the appointment status; a
// doctor re-registering after a network drop must not re-start anything.
type RegisterDoctorPeer struct {
	repo   domain.Repository
	locker redisclient.Locker
}

func NewRegisterDoctorPeer(
	repo domain.Repository,
	locker redisclient.Locker,
) *RegisterDoctorPeer {
	return &RegisterDoctorPeer{
		repo:   repo,
		locker: locker,
	}
}

func (uc *RegisterDoctorPeer) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorRole string,
	peerID string,
) (*models.TeleSession, error) {

	peerID = strings.TrimSpace(peerID)
	if peerID == "" {
		return nil, httperr.ErrBusiness("missing_peer_id")
	}

	var sess *models.TeleSession

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

			sess, err = r.UpsertSessionPeer(ctx, appointmentID, peerID, timezone.Now())
			return err
		})
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, httperr.ErrBusiness("session_busy")
		}
		return nil, err
	}

	return sess, nil
}
