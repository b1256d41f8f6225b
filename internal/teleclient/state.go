package teleclient

// State is the negotiation phase of one client. There is no terminal state: a
// client can always retry by re-entering StateConnecting.
type State int

const (
	StateConnecting State = iota
	StateWaiting
	StateConnected
	StateDisconnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateWaiting:
		return "waiting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
