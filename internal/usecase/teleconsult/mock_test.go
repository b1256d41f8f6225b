package teleconsult

import (
	"context"
	"time"

	"github.com/salustele/teleconsult-api/internal/audit"
	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
	"github.com/salustele/teleconsult-api/internal/redisclient"
)

// mockRepo is an in-memory domain.Repository. Reads return copies so a
// use case mutating a fetched appointment only becomes visible after
// UpdateAppointment, like with a real database.
type mockRepo struct {
	appointments map[uint]models.Appointment
	sessions     map[uint]models.TeleSession
	audits       []models.AuditLog

	doctorOwner map[uint]uint // appointment id -> doctor's user id
	beneficiary map[uint]*domain.BeneficiaryOwner
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		appointments: map[uint]models.Appointment{},
		sessions:     map[uint]models.TeleSession{},
		doctorOwner:  map[uint]uint{},
		beneficiary:  map[uint]*domain.BeneficiaryOwner{},
	}
}

func (m *mockRepo) addAppointment(ap models.Appointment, doctorUserID uint) {
	m.appointments[ap.ID] = ap
	m.doctorOwner[ap.ID] = doctorUserID
}

func (m *mockRepo) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *mockRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := m.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := ap
	return &cp, nil
}

func (m *mockRepo) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.appointments[ap.ID] = *ap
	return nil
}

func (m *mockRepo) ResolveAccess(ctx context.Context, ap *models.Appointment) (domain.AccessInput, error) {
	return domain.AccessInput{
		Appointment:       ap,
		DoctorOwnerUserID: m.doctorOwner[ap.ID],
		Beneficiary:       m.beneficiary[ap.ID],
	}, nil
}

func (m *mockRepo) GetSession(ctx context.Context, appointmentID uint) (*models.TeleSession, error) {
	sess, ok := m.sessions[appointmentID]
	if !ok {
		return nil, nil
	}
	cp := sess
	return &cp, nil
}

func (m *mockRepo) UpsertSessionPeer(ctx context.Context, appointmentID uint, peerID string, now time.Time) (*models.TeleSession, error) {
	sess, ok := m.sessions[appointmentID]
	if !ok {
		sess = models.TeleSession{
			ID:            uint(len(m.sessions) + 1),
			AppointmentID: appointmentID,
			StartedAt:     now,
		}
	}
	sess.DoctorPeerID = &peerID
	m.sessions[appointmentID] = sess

	cp := sess
	return &cp, nil
}

func (m *mockRepo) EndSession(ctx context.Context, appointmentID uint, now time.Time) error {
	sess, ok := m.sessions[appointmentID]
	if !ok || sess.EndedAt != nil {
		return nil
	}
	sess.EndedAt = &now
	m.sessions[appointmentID] = sess
	return nil
}

func (m *mockRepo) AppendAudit(ctx context.Context, appointmentID uint, action string, actorID uint, at time.Time) error {
	m.audits = append(m.audits, models.AuditLog{
		AppointmentID: appointmentID,
		Action:        action,
		ActorID:       actorID,
		CreatedAt:     at,
	})
	return nil
}

func (m *mockRepo) auditCount(appointmentID uint, action string) int {
	n := 0
	for _, a := range m.audits {
		if a.AppointmentID == appointmentID && a.Action == action {
			n++
		}
	}
	return n
}

var _ domain.Repository = (*mockRepo)(nil)

// passLocker hands the lock out immediately.
type passLocker struct{}

func (passLocker) WithAppointmentLock(ctx context.Context, appointmentID uint, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// busyLocker simulates a lock already held elsewhere.
type busyLocker struct{}

func (busyLocker) WithAppointmentLock(ctx context.Context, appointmentID uint, fn func(ctx context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

// recordSink captures dispatched audit events.
type recordSink struct {
	events []audit.Event
}

func (s *recordSink) Dispatch(ev audit.Event) {
	s.events = append(s.events, ev)
}
