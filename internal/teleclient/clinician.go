package teleclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/salustele/teleconsult-api/internal/media"
	"github.com/salustele/teleconsult-api/internal/relay"
)

// ClinicianConfig drives RunClinician.
type ClinicianConfig struct {
	API           *API
	AppointmentID uint
	Relay         relay.Params

	// PeerID is optional; empty lets the relay hand out a fresh one.
	PeerID string

	// OnState, when set, observes every state transition.
	OnState func(State)
}

// RunClinician registers the doctor side of a teleconsultation: it obtains a
// relay identifier, publishes it on the appointment and then answers inbound
// offers until ctx is canceled. On the way out it makes a best-effort attempt
// to finalize the consultation so the appointment does not stay IN_PROGRESS
// behind a crashed client.
func RunClinician(ctx context.Context, cfg ClinicianConfig) error {
	setState := func(s State) {
		if cfg.OnState != nil {
			cfg.OnState(s)
		}
	}

	setState(StateConnecting)

	client, err := dialWithIDRetry(ctx, cfg.Relay, cfg.PeerID)
	if err != nil {
		setState(StateError)
		return err
	}
	defer client.Close()

	if err := cfg.API.RegisterPeer(ctx, cfg.AppointmentID, client.ID()); err != nil {
		setState(StateError)
		return err
	}

	defer func() {
		// ctx is usually already canceled here; finalize on its own clock.
		finCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cfg.API.Finalize(finCtx, cfg.AppointmentID)
	}()

	setState(StateWaiting)

	loop := &clinicianLoop{send: client, setState: setState}
	defer loop.close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-loop.remote:
			loop.remote = nil
			loop.connected = true
			setState(StateConnected)

		case ev, ok := <-client.Events():
			if !ok {
				return &relay.Error{Kind: relay.KindSignalingLost, Message: "signaling channel closed"}
			}

			switch ev.Kind {
			case relay.EventDisconnected:
				setState(StateDisconnected)
				if ev.Err != nil {
					return ev.Err
				}

			case relay.EventReconnected:
				if loop.connected {
					setState(StateConnected)
				} else {
					setState(StateWaiting)
				}

			case relay.EventMessage:
				if err := loop.handleMessage(ev.Msg); err != nil {
					setState(StateError)
					return err
				}
			}
		}
	}
}

// peerSender is the slice of the relay client the call loop needs.
type peerSender interface {
	Send(dst string, typ relay.MessageType, payload any) error
}

// clinicianLoop tracks the one call a doctor serves at a time.
type clinicianLoop struct {
	send     peerSender
	setState func(State)

	engine    *media.Engine
	remote    <-chan struct{}
	caller    string
	connected bool
}

func (l *clinicianLoop) handleMessage(msg *relay.Message) error {
	switch msg.Type {
	case relay.MsgOffer:
		return l.handleOffer(msg)

	case relay.MsgCandidate:
		if l.engine == nil || msg.Src != l.caller {
			return nil
		}
		var in candidatePayload
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			return nil
		}
		_ = l.engine.AddCandidate(in.Candidate)

	case relay.MsgLeave, relay.MsgExpire:
		if msg.Src == l.caller && l.caller != "" {
			l.endCall()
		}
	}
	return nil
}

func (l *clinicianLoop) handleOffer(msg *relay.Message) error {
	var in sdpPayload
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		return nil // malformed offer, ignore
	}

	// A fresh offer supersedes whatever call was in flight; the doctor is
	// back to waiting until the new remote track arrives.
	if l.engine != nil {
		l.endCall()
	}

	src := msg.Src
	eng, err := media.NewEngine(func(c webrtc.ICECandidateInit) {
		_ = l.send.Send(src, relay.MsgCandidate, candidatePayload{Candidate: c})
	})
	if err != nil {
		return err
	}

	answer, err := eng.AcceptOffer(in.SDP)
	if err != nil {
		eng.Close()
		return err
	}
	if err := l.send.Send(src, relay.MsgAnswer, sdpPayload{SDP: answer}); err != nil {
		eng.Close()
		return err
	}

	l.engine = eng
	l.remote = eng.RemoteTrack()
	l.caller = src
	return nil
}

// endCall tears down the current call and returns to waiting.
func (l *clinicianLoop) endCall() {
	l.close()
	l.remote = nil
	l.caller = ""
	l.connected = false
	l.setState(StateWaiting)
}

func (l *clinicianLoop) close() {
	if l.engine != nil {
		l.engine.Close()
		l.engine = nil
	}
}
