package teleconsult

import (
	"context"
	"time"

	"github.com/salustele/teleconsult-api/internal/models"
)

type Repository interface {
	// WithTx runs fn against a transaction-scoped repository. All reads and
	// writes inside fn commit atomically or not at all.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate locks the appointment row for the duration of
	// the surrounding transaction.
	GetAppointmentForUpdate(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Access resolution --------
	ResolveAccess(
		ctx context.Context,
		ap *models.Appointment,
	) (AccessInput, error)

	// -------- Session registry --------
	GetSession(
		ctx context.Context,
		appointmentID uint,
	) (*models.TeleSession, error)

	// UpsertSessionPeer creates the registry row if absent (started at now)
	// or overwrites the current doctor peer id. Idempotent: repeated calls
	// always leave exactly one current id.
	UpsertSessionPeer(
		ctx context.Context,
		appointmentID uint,
		peerID string,
		now time.Time,
	) (*models.TeleSession, error)

	// EndSession sets the registry end timestamp if the row exists and has
	// not ended yet. No-op otherwise.
	EndSession(
		ctx context.Context,
		appointmentID uint,
		now time.Time,
	) error

	// -------- Audit --------
	AppendAudit(
		ctx context.Context,
		appointmentID uint,
		action string,
		actorID uint,
		at time.Time,
	) error
}
