package models

import "time"

const (
	BeneficiaryTitular    = "TITULAR"
	BeneficiaryDependente = "DEPENDENTE"
)

// Beneficiário titular ou dependente; dependente aponta para exatamente um titular.
type Beneficiary struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name string `gorm:"size:100;not null" json:"name"`
	Kind string `gorm:"size:20;default:'TITULAR'" json:"kind"`

	PrincipalID *uint        `json:"principal_id"`
	Principal   *Beneficiary `gorm:"foreignKey:PrincipalID" json:"principal,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
