// Package media wraps one Pion peer connection behind the small surface the
// negotiation actors need. It is deliberately standalone: it imports only
// Pion and stdlib, and reaches the signaling layer through the candidate
// callback alone.
package media

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

// Engine owns a single peer connection for one call. Codec negotiation and
// media encoding stay inside Pion.
type Engine struct {
	pc *webrtc.PeerConnection

	remote     chan struct{}
	remoteOnce sync.Once
	closeOnce  sync.Once
}

// NewEngine builds a peer connection with bidirectional audio and video
// transceivers. onCandidate fires for every local ICE candidate and is
// expected to forward it to the remote peer over signaling.
func NewEngine(onCandidate func(webrtc.ICECandidateInit)) (*Engine, error) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		pc:     pc,
		remote: make(chan struct{}),
	}

	for _, kind := range []webrtc.RTPCodecType{webrtc.RTPCodecTypeAudio, webrtc.RTPCodecTypeVideo} {
		if _, err := pc.AddTransceiverFromKind(kind, webrtc.RTPTransceiverInit{
			Direction: webrtc.RTPTransceiverDirectionSendrecv,
		}); err != nil {
			_ = pc.Close()
			return nil, err
		}
	}

	pc.OnTrack(func(_ *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		e.remoteOnce.Do(func() { close(e.remote) })
	})

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c != nil && onCandidate != nil {
			onCandidate(c.ToJSON())
		}
	})

	return e, nil
}

// CreateOffer produces the local offer and installs it as the local
// description. Candidates trickle afterwards through the callback.
func (e *Engine) CreateOffer() (webrtc.SessionDescription, error) {
	offer, err := e.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := e.pc.SetLocalDescription(offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	return offer, nil
}

// AcceptOffer installs the remote offer and produces the answer.
func (e *Engine) AcceptOffer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if err := e.pc.SetRemoteDescription(offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	answer, err := e.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := e.pc.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	return answer, nil
}

// AcceptAnswer installs the remote answer on the offering side.
func (e *Engine) AcceptAnswer(answer webrtc.SessionDescription) error {
	return e.pc.SetRemoteDescription(answer)
}

// AddCandidate adds a remote ICE candidate as it trickles in.
func (e *Engine) AddCandidate(c webrtc.ICECandidateInit) error {
	return e.pc.AddICECandidate(c)
}

// RemoteTrack is closed when the first remote media track arrives; the
// negotiation machine treats that as connected.
func (e *Engine) RemoteTrack() <-chan struct{} {
	return e.remote
}

// Close tears the peer connection down. Idempotent, safe on every exit path.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		_ = e.pc.Close()
	})
}
