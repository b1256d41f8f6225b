package models

import "time"

// AuditLog é append-only: nunca atualizado ou removido.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint   `gorm:"index" json:"appointment_id"`
	Action        string `gorm:"size:20;not null" json:"action"`

	ActorID uint `json:"actor_id"`
	Actor   User `gorm:"foreignKey:ActorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
