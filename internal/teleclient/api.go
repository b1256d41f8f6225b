package teleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/salustele/teleconsult-api/internal/relay"
)

// API is the coordinator REST client used by both negotiation actors.
type API struct {
	base  string
	token string
	httpc *http.Client
}

func NewAPI(base string) *API {
	return &API{
		base:  base,
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *API) SetToken(token string) {
	a.token = token
}

// APIError is a non-2xx coordinator response. Code carries the server's
// business code so callers can branch on it.
type APIError struct {
	Status  int
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coordinator: %d %s", e.Status, e.Code)
}

// ---- Response shapes (mirrors of the server payloads) ----

type RelayParams struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Path   string `json:"path"`
	Secure bool   `json:"secure"`
}

func (p RelayParams) Params() relay.Params {
	return relay.Params{Host: p.Host, Port: p.Port, Path: p.Path, Secure: p.Secure}
}

type RoomDescriptor struct {
	AppointmentID     uint        `json:"appointment_id"`
	AppointmentStatus string      `json:"appointment_status"`
	RoomID            string      `json:"room_id"`
	DoctorPeerID      *string     `json:"doctor_peer_id"`
	Relay             RelayParams `json:"relay"`
}

type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ---- Operations ----

func (a *API) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := a.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	a.token = out.Token
	return nil
}

func (a *API) RoomDescriptor(ctx context.Context, appointmentID uint) (*RoomDescriptor, error) {
	var out RoomDescriptor
	path := fmt.Sprintf("/api/appointments/%d/teleconsult", appointmentID)
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) RegisterPeer(ctx context.Context, appointmentID uint, peerID string) error {
	path := fmt.Sprintf("/api/appointments/%d/teleconsult/peer", appointmentID)
	return a.do(ctx, http.MethodPost, path, map[string]string{"peer_id": peerID}, nil)
}

func (a *API) Finalize(ctx context.Context, appointmentID uint) error {
	path := fmt.Sprintf("/api/appointments/%d/teleconsult/finish", appointmentID)
	return a.do(ctx, http.MethodPost, path, nil, nil)
}

func (a *API) StartConsultation(ctx context.Context, appointmentID uint) error {
	path := fmt.Sprintf("/api/appointments/%d/teleconsult/start", appointmentID)
	return a.do(ctx, http.MethodPost, path, nil, nil)
}

func (a *API) Availability(ctx context.Context, appointmentID uint) (*Availability, error) {
	var out Availability
	path := fmt.Sprintf("/api/appointments/%d/teleconsult/availability", appointmentID)
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
