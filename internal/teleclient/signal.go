package teleclient

import (
	"context"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/salustele/teleconsult-api/internal/relay"
)

const (
	dialRetries    = 3
	dialRetryDelay = time.Second
)

// sdpPayload carries an OFFER or ANSWER body through the relay.
type sdpPayload struct {
	SDP webrtc.SessionDescription `json:"sdp"`
}

type candidatePayload struct {
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

// dialWithIDRetry registers with the relay, retrying recoverable failures.
// An id collision means a stale registration is still expiring server-side,
// so the retry proposes a fresh id instead of fighting over the old one.
func dialWithIDRetry(ctx context.Context, params relay.Params, proposedID string) (*relay.Client, error) {
	var lastErr error
	for attempt := 0; attempt <= dialRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(dialRetryDelay):
			}
		}

		client, err := relay.Dial(ctx, params, proposedID)
		if err == nil {
			return client, nil
		}
		if !relay.Recoverable(err) {
			return nil, err
		}
		if relay.KindOf(err) == relay.KindIDCollision {
			proposedID = ""
		}
		lastErr = err
	}
	return nil, lastErr
}
