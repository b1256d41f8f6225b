package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/httpresp"
	"github.com/salustele/teleconsult-api/internal/middleware"
	ucTeleconsult "github.com/salustele/teleconsult-api/internal/usecase/teleconsult"
)

// ======================================================
// HANDLER
// ======================================================

type TeleconsultHandler struct {
	roomUC         *ucTeleconsult.GetRoomDescriptor
	registerUC     *ucTeleconsult.RegisterDoctorPeer
	finalizeUC     *ucTeleconsult.FinalizeSession
	availabilityUC *ucTeleconsult.CheckAvailability
	startUC        *ucTeleconsult.StartConsultation
	cancelUC       *ucTeleconsult.CancelAppointment
}

func NewTeleconsultHandler(
	roomUC *ucTeleconsult.GetRoomDescriptor,
	registerUC *ucTeleconsult.RegisterDoctorPeer,
	finalizeUC *ucTeleconsult.FinalizeSession,
	availabilityUC *ucTeleconsult.CheckAvailability,
	startUC *ucTeleconsult.StartConsultation,
	cancelUC *ucTeleconsult.CancelAppointment,
) *TeleconsultHandler {
	return &TeleconsultHandler{
		roomUC:         roomUC,
		registerUC:     registerUC,
		finalizeUC:     finalizeUC,
		availabilityUC: availabilityUC,
		startUC:        startUC,
		cancelUC:       cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterPeerRequest struct {
	PeerID string `json:"peer_id"`
}

// ======================================================
// HELPERS
// ======================================================

func appointmentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) (uint, string) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.MustGet(middleware.ContextUserRole).(string)
}

// writeUsecaseError maps use-case business codes onto the HTTP boundary.
func writeUsecaseError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case "doctor_not_found", "beneficiary_not_found":
		httperr.NotFound(c, httperr.BusinessCode(err), "Registro não encontrado.")
	case "access_denied":
		httperr.Forbidden(c, "access_denied", "Acesso negado.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Transição de estado inválida.")
	case "appointment_canceled":
		httperr.BadRequest(c, "appointment_canceled", "Consulta cancelada.")
	case "appointment_finished":
		httperr.BadRequest(c, "appointment_finished", "Consulta já encerrada.")
	case "missing_peer_id":
		httperr.BadRequest(c, "missing_peer_id", "Identificador de conexão obrigatório.")
	case "session_busy":
		httperr.Conflict(c, "session_busy", "Outra operação em andamento, tente novamente.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}

// ======================================================
// ROOM DESCRIPTOR
// ======================================================

func (h *TeleconsultHandler) Room(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	actorID, actorRole := actor(c)

	desc, err := h.roomUC.Execute(c.Request.Context(), appointmentID, actorID, actorRole)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, desc)
}

// ======================================================
// REGISTER PEER
// ======================================================

func (h *TeleconsultHandler) RegisterPeer(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	actorID, actorRole := actor(c)

	var req RegisterPeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sess, err := h.registerUC.Execute(c.Request.Context(), appointmentID, actorID, actorRole, req.PeerID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"ok":                 true,
		"registered_peer_id": sess.DoctorPeerID,
	})
}

// ======================================================
// FINISH
// ======================================================

func (h *TeleconsultHandler) Finish(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	actorID, actorRole := actor(c)

	if err := h.finalizeUC.Execute(c.Request.Context(), appointmentID, actorID, actorRole); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *TeleconsultHandler) Availability(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	av, err := h.availabilityUC.Execute(c.Request.Context(), appointmentID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, av)
}

// ======================================================
// START / CANCEL
// ======================================================

func (h *TeleconsultHandler) Start(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	actorID, actorRole := actor(c)

	if _, err := h.startUC.Execute(c.Request.Context(), appointmentID, actorID, actorRole); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}

func (h *TeleconsultHandler) Cancel(c *gin.Context) {
	appointmentID, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	actorID, actorRole := actor(c)

	if _, err := h.cancelUC.Execute(c.Request.Context(), appointmentID, actorID, actorRole); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}
