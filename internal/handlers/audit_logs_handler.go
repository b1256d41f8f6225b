package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/httpresp"
	"github.com/salustele/teleconsult-api/internal/middleware"
	"github.com/salustele/teleconsult-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type AuditEntryResponse struct {
	Action    string    `json:"action"`
	ActorName string    `json:"actor_name"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the lifecycle trail of one appointment, oldest first.
// Display only; admin role required.
func (h *AuditLogsHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role != domain.RoleAdmin {
		httperr.Forbidden(c, "access_denied", "Acesso negado.")
		return
	}

	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	var logs []models.AuditLog
	if err := h.db.
		Preload("Actor").
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar auditoria.")
		return
	}

	entries := make([]AuditEntryResponse, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, AuditEntryResponse{
			Action:    l.Action,
			ActorName: l.Actor.Name,
			CreatedAt: l.CreatedAt,
		})
	}

	httpresp.List(c, entries)
}
