package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/salustele/teleconsult-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

// New builds a logger over db, which may be a transaction handle: the
// finalize path appends its entry inside the same transaction as the status
// and registry writes.
func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Append(
	appointmentID uint,
	action string,
	actorID uint,
	at time.Time,
) error {
	entry := models.AuditLog{
		AppointmentID: appointmentID,
		Action:        action,
		ActorID:       actorID,
		CreatedAt:     at,
	}

	return l.db.Create(&entry).Error
}
