package relay

import "encoding/json"

// Wire messages exchanged with the signaling relay. The relay registers each
// client under its peer id and forwards OFFER / ANSWER / CANDIDATE payloads
// between peers; it never inspects them.
type MessageType string

const (
	MsgOpen      MessageType = "OPEN"
	MsgIDTaken   MessageType = "ID-TAKEN"
	MsgError     MessageType = "ERROR"
	MsgOffer     MessageType = "OFFER"
	MsgAnswer    MessageType = "ANSWER"
	MsgCandidate MessageType = "CANDIDATE"
	MsgLeave     MessageType = "LEAVE"
	MsgExpire    MessageType = "EXPIRE"
	MsgHeartbeat MessageType = "HEARTBEAT"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Src     string          `json:"src,omitempty"`
	Dst     string          `json:"dst,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the body of an ERROR message.
type ErrorPayload struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
}
