package media

import (
	"strings"
	"testing"

	"github.com/pion/webrtc/v4"
)

func TestOfferAnswerExchange(t *testing.T) {
	caller, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("caller engine: %v", err)
	}
	defer caller.Close()

	callee, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("callee engine: %v", err)
	}
	defer callee.Close()

	offer, err := caller.CreateOffer()
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if offer.Type != webrtc.SDPTypeOffer || offer.SDP == "" {
		t.Fatalf("offer = %+v", offer)
	}
	if !strings.Contains(offer.SDP, "m=audio") || !strings.Contains(offer.SDP, "m=video") {
		t.Error("offer is missing audio or video media sections")
	}

	answer, err := callee.AcceptOffer(offer)
	if err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if answer.Type != webrtc.SDPTypeAnswer || answer.SDP == "" {
		t.Fatalf("answer = %+v", answer)
	}

	if err := caller.AcceptAnswer(answer); err != nil {
		t.Fatalf("accept answer: %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	e.Close()
	e.Close()
}
