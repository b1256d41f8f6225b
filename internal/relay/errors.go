package relay

import "errors"

// Kind classifies a relay failure. Clients branch on it: id collisions and an
// unreachable relay are recovered locally (retry / reconnect); everything
// else surfaces to the caller after the bounded attempts.
type Kind string

const (
	KindIDCollision           Kind = "unavailable-id"
	KindInvalidID             Kind = "invalid-id"
	KindTransportIncompatible Kind = "transport-incompatible"
	KindNetwork               Kind = "network"
	KindRelayUnavailable      Kind = "relay-unavailable"
	KindSignalingLost         Kind = "signaling-channel-lost"
	KindPeerUnavailable       Kind = "peer-unavailable"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the relay kind of err, or "" for non-relay errors.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// Recoverable reports whether the client should retry locally instead of
// surfacing the error.
func Recoverable(err error) bool {
	switch KindOf(err) {
	case KindIDCollision, KindRelayUnavailable:
		return true
	}
	return false
}
