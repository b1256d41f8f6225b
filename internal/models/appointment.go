package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorProfileID uint          `json:"doctor_profile_id"`
	DoctorProfile   DoctorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor_profile"`

	PatientUserID *uint `json:"patient_user_id"`
	PatientUser   *User `gorm:"foreignKey:PatientUserID" json:"patient_user,omitempty"`

	BeneficiaryID *uint        `json:"beneficiary_id"`
	Beneficiary   *Beneficiary `gorm:"foreignKey:BeneficiaryID" json:"beneficiary,omitempty"`

	ScheduledDate time.Time `gorm:"type:date" json:"scheduled_date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`

	Modality string `gorm:"size:20;default:'remote'" json:"modality"`
	Status   string `gorm:"size:20;default:'SCHEDULED'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
