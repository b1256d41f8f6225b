package teleconsult

import (
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(ap *models.Appointment) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	return nil
}

// Finish moves the appointment to FINISHED. A second call on an already
// finished appointment reports alreadyFinished so callers can no-op instead
// of writing again; finishing a canceled appointment is an invalid state.
func Finish(ap *models.Appointment) (alreadyFinished bool, err error) {
	switch Status(ap.Status) {
	case StatusFinished:
		return true, nil
	case StatusCanceled:
		return false, httperr.ErrBusiness("invalid_state")
	default:
		ap.Status = string(StatusFinished)
		return false, nil
	}
}
