package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salustele/teleconsult-api/internal/audit"
	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
)

type TeleconsultGormRepository struct {
	db *gorm.DB
}

func NewTeleconsultGormRepository(db *gorm.DB) *TeleconsultGormRepository {
	return &TeleconsultGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *TeleconsultGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TeleconsultGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *TeleconsultGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *TeleconsultGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, appointmentID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *TeleconsultGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Access resolution
// --------------------------------------------------

// ResolveAccess flattens the records the access guard needs: the owner of the
// appointment's doctor profile and, when a beneficiary is referenced, its
// owner plus (for dependents) the owner of its principal. Only one level of
// the principal chain is read.
func (r *TeleconsultGormRepository) ResolveAccess(
	ctx context.Context,
	ap *models.Appointment,
) (domain.AccessInput, error) {

	in := domain.AccessInput{Appointment: ap}

	var doctor models.DoctorProfile
	if err := r.db.WithContext(ctx).First(&doctor, ap.DoctorProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return in, httperr.ErrBusiness("doctor_not_found")
		}
		return in, err
	}
	in.DoctorOwnerUserID = doctor.UserID

	if ap.BeneficiaryID == nil {
		return in, nil
	}

	var bene models.Beneficiary
	if err := r.db.WithContext(ctx).First(&bene, *ap.BeneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return in, httperr.ErrBusiness("beneficiary_not_found")
		}
		return in, err
	}

	owner := domain.BeneficiaryOwner{OwnerUserID: bene.UserID}

	if bene.Kind == models.BeneficiaryDependente && bene.PrincipalID != nil {
		var principal models.Beneficiary
		if err := r.db.WithContext(ctx).First(&principal, *bene.PrincipalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return in, httperr.ErrBusiness("beneficiary_not_found")
			}
			return in, err
		}
		owner.PrincipalOwnerUserID = &principal.UserID
	}

	in.Beneficiary = &owner
	return in, nil
}

// --------------------------------------------------
// Session registry
// --------------------------------------------------

func (r *TeleconsultGormRepository) GetSession(
	ctx context.Context,
	appointmentID uint,
) (*models.TeleSession, error) {

	var sess models.TeleSession
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&sess).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// UpsertSessionPeer relies on the appointment_id unique index: insert the row
// on first registration, otherwise overwrite doctor_peer_id in place.
// started_at and ended_at are never touched by a re-registration.
func (r *TeleconsultGormRepository) UpsertSessionPeer(
	ctx context.Context,
	appointmentID uint,
	peerID string,
	now time.Time,
) (*models.TeleSession, error) {

	sess := models.TeleSession{
		AppointmentID: appointmentID,
		DoctorPeerID:  &peerID,
		StartedAt:     now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "appointment_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"doctor_peer_id": peerID,
				"updated_at":     now,
			}),
		}).
		Create(&sess).Error; err != nil {
		return nil, err
	}

	return r.GetSession(ctx, appointmentID)
}

func (r *TeleconsultGormRepository) EndSession(
	ctx context.Context,
	appointmentID uint,
	now time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.TeleSession{}).
		Where("appointment_id = ? AND ended_at IS NULL", appointmentID).
		Update("ended_at", now).Error
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *TeleconsultGormRepository) AppendAudit(
	ctx context.Context,
	appointmentID uint,
	action string,
	actorID uint,
	at time.Time,
) error {
	return audit.New(r.db.WithContext(ctx)).Append(appointmentID, action, actorID, at)
}

// Compile-time check
var _ domain.Repository = (*TeleconsultGormRepository)(nil)
