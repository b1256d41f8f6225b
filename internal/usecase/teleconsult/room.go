package teleconsult

import (
	"context"

	"github.com/salustele/teleconsult-api/internal/config"
	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
)

type GetRoomDescriptor struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewGetRoomDescriptor(
	repo domain.Repository,
	cfg *config.Config,
) *GetRoomDescriptor {
	return &GetRoomDescriptor{
		repo: repo,
		cfg:  cfg,
	}
}

func (uc *GetRoomDescriptor) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorRole string,
) (*domain.RoomDescriptor, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	acc, err := uc.repo.ResolveAccess(ctx, ap)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccess(actorRole, actorID, acc) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	switch domain.Status(ap.Status) {
	case domain.StatusCanceled:
		return nil, httperr.ErrBusiness("appointment_canceled")
	case domain.StatusFinished:
		return nil, httperr.ErrBusiness("appointment_finished")
	}

	desc := &domain.RoomDescriptor{
		AppointmentID:     ap.ID,
		AppointmentStatus: domain.Status(ap.Status),
		RoomID:            domain.RoomID(ap.ID),
		Relay: domain.RelayParams{
			Host:   uc.cfg.RelayHost,
			Port:   uc.cfg.RelayPort,
			Path:   uc.cfg.RelayPath,
			Secure: uc.cfg.RelaySecure,
		},
	}

	// The doctor publishes the peer id; only patients consume it.
	if actorRole == domain.RolePatient {
		if sess, err := uc.repo.GetSession(ctx, appointmentID); err != nil {
			return nil, err
		} else if sess != nil {
			desc.DoctorPeerID = sess.DoctorPeerID
		}
	}

	return desc, nil
}
