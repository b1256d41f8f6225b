package teleconsult

import (
	"context"
	"testing"

	"github.com/salustele/teleconsult-api/internal/config"
	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/httperr"
)

func relayConfig() *config.Config {
	return &config.Config{
		RelayHost:   "relay.local",
		RelayPort:   9000,
		RelayPath:   "/teleconsult",
		RelaySecure: true,
	}
}

func TestGetRoomDescriptorForPatient(t *testing.T) {
	repo := inProgressRepo()
	reg := NewRegisterDoctorPeer(repo, passLocker{})
	if _, err := reg.Execute(context.Background(), apID, doctorUserID, domain.RoleDoctor, "relayId1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	uc := NewGetRoomDescriptor(repo, relayConfig())
	desc, err := uc.Execute(context.Background(), apID, patientID, domain.RolePatient)
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	if desc.RoomID != domain.RoomID(apID) {
		t.Errorf("room id = %s, want %s", desc.RoomID, domain.RoomID(apID))
	}
	if desc.DoctorPeerID == nil || *desc.DoctorPeerID != "relayId1" {
		t.Errorf("doctor peer id = %v, want relayId1", desc.DoctorPeerID)
	}
	if desc.Relay.Host != "relay.local" || !desc.Relay.Secure {
		t.Errorf("relay params = %+v", desc.Relay)
	}
}

func TestGetRoomDescriptorHidesPeerFromDoctor(t *testing.T) {
	repo := inProgressRepo()
	reg := NewRegisterDoctorPeer(repo, passLocker{})
	if _, err := reg.Execute(context.Background(), apID, doctorUserID, domain.RoleDoctor, "relayId1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	uc := NewGetRoomDescriptor(repo, relayConfig())
	desc, err := uc.Execute(context.Background(), apID, doctorUserID, domain.RoleDoctor)
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if desc.DoctorPeerID != nil {
		t.Errorf("doctor-role caller received peer id %q", *desc.DoctorPeerID)
	}
}

func TestGetRoomDescriptorTerminalStates(t *testing.T) {
	for status, code := range map[domain.Status]string{
		domain.StatusCanceled: "appointment_canceled",
		domain.StatusFinished: "appointment_finished",
	} {
		repo := inProgressRepo()
		ap := repo.appointments[apID]
		ap.Status = string(status)
		repo.appointments[apID] = ap

		uc := NewGetRoomDescriptor(repo, relayConfig())
		_, err := uc.Execute(context.Background(), apID, patientID, domain.RolePatient)
		if httperr.BusinessCode(err) != code {
			t.Errorf("%s: err = %v, want %s", status, err, code)
		}
	}
}

func TestGetRoomDescriptorAccessDenied(t *testing.T) {
	uc := NewGetRoomDescriptor(inProgressRepo(), relayConfig())

	_, err := uc.Execute(context.Background(), apID, patientID+1, domain.RolePatient)
	if httperr.BusinessCode(err) != "access_denied" {
		t.Errorf("stranger: err = %v, want access_denied", err)
	}

	_, err = uc.Execute(context.Background(), apID, patientID, domain.RoleAdmin)
	if httperr.BusinessCode(err) != "access_denied" {
		t.Errorf("admin: err = %v, want access_denied", err)
	}
}

func TestGetRoomDescriptorNotFound(t *testing.T) {
	uc := NewGetRoomDescriptor(newMockRepo(), relayConfig())

	_, err := uc.Execute(context.Background(), 99, patientID, domain.RolePatient)
	if httperr.BusinessCode(err) != "appointment_not_found" {
		t.Errorf("err = %v, want appointment_not_found", err)
	}
}
