package teleclient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/salustele/teleconsult-api/internal/media"
	"github.com/salustele/teleconsult-api/internal/relay"
)

// ErrDoctorNotConnected means the appointment has no published doctor peer
// id yet. The caller should keep polling availability instead of retrying
// the connection.
var ErrDoctorNotConnected = errors.New("doctor has not connected yet")

const (
	connectRetries    = 3
	connectRetryDelay = 2 * time.Second
	answerTimeout     = 20 * time.Second
)

// PatientConfig drives RunPatient.
type PatientConfig struct {
	API           *API
	AppointmentID uint
	Relay         relay.Params
	OnState       func(State)
}

// RunPatient places the patient side of a teleconsultation: it registers
// with the relay, fetches the room descriptor and offers media to the doctor
// peer, then stays in the call until the doctor hangs up or ctx is canceled.
//
// When the descriptor has no doctor peer id the run fails fast with
// ErrDoctorNotConnected, before any offer is sent. A doctor that registered
// but dropped off the relay shows up as peer-unavailable instead; that is
// retried a few times with the descriptor refetched each attempt, since the
// doctor may republish under a new id.
func RunPatient(ctx context.Context, cfg PatientConfig) error {
	setState := func(s State) {
		if cfg.OnState != nil {
			cfg.OnState(s)
		}
	}

	setState(StateConnecting)

	client, err := dialWithIDRetry(ctx, cfg.Relay, "")
	if err != nil {
		setState(StateError)
		return err
	}
	defer client.Close()

	desc, err := cfg.API.RoomDescriptor(ctx, cfg.AppointmentID)
	if err != nil {
		setState(StateError)
		return err
	}
	if desc.DoctorPeerID == nil || *desc.DoctorPeerID == "" {
		setState(StateError)
		return ErrDoctorNotConnected
	}

	var (
		engine   *media.Engine
		doctorID string
		lastErr  error
	)
	for attempt := 0; attempt <= connectRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(connectRetryDelay):
			}

			desc, err = cfg.API.RoomDescriptor(ctx, cfg.AppointmentID)
			if err != nil {
				setState(StateError)
				return err
			}
			if desc.DoctorPeerID == nil || *desc.DoctorPeerID == "" {
				lastErr = ErrDoctorNotConnected
				continue
			}
		}

		doctorID = *desc.DoctorPeerID
		engine, err = connectOnce(ctx, client, doctorID)
		if err == nil {
			break
		}
		if !retryableConnect(err) {
			setState(StateError)
			return err
		}
		lastErr = err
	}
	if engine == nil {
		setState(StateError)
		if lastErr == nil {
			lastErr = &relay.Error{Kind: relay.KindPeerUnavailable}
		}
		return lastErr
	}
	defer engine.Close()

	setState(StateConnected)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

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
				setState(StateConnected)

			case relay.EventMessage:
				switch ev.Msg.Type {
				case relay.MsgCandidate:
					if ev.Msg.Src != doctorID {
						continue
					}
					var in candidatePayload
					if err := json.Unmarshal(ev.Msg.Payload, &in); err != nil {
						continue
					}
					_ = engine.AddCandidate(in.Candidate)

				case relay.MsgLeave, relay.MsgExpire:
					if ev.Msg.Src == doctorID {
						setState(StateDisconnected)
						return nil
					}
				}
			}
		}
	}
}

// retryableConnect reports whether a failed attempt should be tried again
// with a fresh descriptor. Transient failures (timeout, a doctor that
// dropped off the relay, a network-kind relay error) consume the retry
// budget; incompatibility errors surface immediately since repeating the
// attempt cannot change the outcome.
func retryableConnect(err error) bool {
	if errors.Is(err, errAnswerTimeout) {
		return true
	}
	switch relay.KindOf(err) {
	case relay.KindPeerUnavailable, relay.KindNetwork:
		return true
	}
	return false
}

var errAnswerTimeout = errors.New("timed out waiting for answer")

// connectOnce performs one full offer/answer exchange against doctorID and
// waits for remote media to arrive. The returned engine is live; on error
// nothing is left open.
func connectOnce(ctx context.Context, client *relay.Client, doctorID string) (*media.Engine, error) {
	engine, err := media.NewEngine(func(c webrtc.ICECandidateInit) {
		_ = client.Send(doctorID, relay.MsgCandidate, candidatePayload{Candidate: c})
	})
	if err != nil {
		return nil, err
	}

	offer, err := engine.CreateOffer()
	if err != nil {
		engine.Close()
		return nil, err
	}
	if err := client.Send(doctorID, relay.MsgOffer, sdpPayload{SDP: offer}); err != nil {
		engine.Close()
		return nil, err
	}

	timeout := time.NewTimer(answerTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			engine.Close()
			return nil, ctx.Err()

		case <-timeout.C:
			engine.Close()
			return nil, errAnswerTimeout

		case <-engine.RemoteTrack():
			return engine, nil

		case ev, ok := <-client.Events():
			if !ok {
				engine.Close()
				return nil, &relay.Error{Kind: relay.KindSignalingLost, Message: "signaling channel closed"}
			}
			if ev.Kind == relay.EventDisconnected && ev.Err != nil {
				engine.Close()
				return nil, ev.Err
			}
			if ev.Kind != relay.EventMessage {
				continue
			}

			switch ev.Msg.Type {
			case relay.MsgAnswer:
				if ev.Msg.Src != doctorID {
					continue
				}
				var in sdpPayload
				if err := json.Unmarshal(ev.Msg.Payload, &in); err != nil {
					continue
				}
				if err := engine.AcceptAnswer(in.SDP); err != nil {
					engine.Close()
					return nil, err
				}

			case relay.MsgCandidate:
				if ev.Msg.Src != doctorID {
					continue
				}
				var in candidatePayload
				if err := json.Unmarshal(ev.Msg.Payload, &in); err != nil {
					continue
				}
				_ = engine.AddCandidate(in.Candidate)

			case relay.MsgError:
				var in relay.ErrorPayload
				if err := json.Unmarshal(ev.Msg.Payload, &in); err != nil {
					continue
				}
				engine.Close()
				return nil, &relay.Error{Kind: in.Kind, Message: in.Message}
			}
		}
	}
}
