package teleconsult

import (
	"fmt"

	"github.com/google/uuid"
)

// Fixed namespace so the same appointment always derives the same room id.
var roomNamespace = uuid.MustParse("7c9e2f0a-61d4-4b8e-9f3a-2d5b8c1e4a06")

func RoomID(appointmentID uint) string {
	return uuid.NewSHA1(roomNamespace, []byte(fmt.Sprintf("teleconsult-%d", appointmentID))).String()
}

// RelayParams are the signaling-relay connection parameters clients need.
type RelayParams struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Path   string `json:"path"`
	Secure bool   `json:"secure"`
}

// RoomDescriptor is the payload a client needs to join a session.
// DoctorPeerID is populated only for patient-role callers; the doctor is the
// publisher of that id, not a consumer.
type RoomDescriptor struct {
	AppointmentID     uint        `json:"appointment_id"`
	AppointmentStatus Status      `json:"appointment_status"`
	RoomID            string      `json:"room_id"`
	DoctorPeerID      *string     `json:"doctor_peer_id"`
	Relay             RelayParams `json:"relay"`
}
