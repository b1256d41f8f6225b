package teleconsult

import "github.com/salustele/teleconsult-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusCanceled   Status = "CANCELED"
)

// Audit actions, one per lifecycle transition.
const (
	ActionCreated  = "CREATED"
	ActionStarted  = "STARTED"
	ActionFinished = "FINISHED"
	ActionCanceled = "CANCELED"
)

// ===============================
// Validations
// ===============================

// CanStart define se a consulta pode entrar em andamento
func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado.
// CANCELED is reachable from SCHEDULED or IN_PROGRESS, never from FINISHED.
func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
