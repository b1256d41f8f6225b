package teleconsult

import (
	"context"
	"testing"

	domain "github.com/salustele/teleconsult-api/internal/domain/teleconsult"
	"github.com/salustele/teleconsult-api/internal/models"
)

func TestCheckAvailabilityNotFound(t *testing.T) {
	uc := NewCheckAvailability(newMockRepo())

	av, err := uc.Execute(context.Background(), 99)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if av.Available || av.Reason != domain.ReasonNotFound {
		t.Errorf("got %+v, want not_found", av)
	}
}

func TestCheckAvailabilityProgression(t *testing.T) {
	repo := newMockRepo()
	pid := patientID
	repo.addAppointment(models.Appointment{
		ID:            apID,
		PatientUserID: &pid,
		Status:        string(domain.StatusScheduled),
	}, doctorUserID)

	uc := NewCheckAvailability(repo)

	av, err := uc.Execute(context.Background(), apID)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if av.Available || av.Reason != domain.ReasonWaitingDoctorStart {
		t.Errorf("scheduled: got %+v", av)
	}

	// Doctor starts but has not registered a peer yet.
	ap := repo.appointments[apID]
	ap.Status = string(domain.StatusInProgress)
	repo.appointments[apID] = ap

	av, _ = uc.Execute(context.Background(), apID)
	if av.Available || av.Reason != domain.ReasonWaitingDoctorPeer {
		t.Errorf("no peer: got %+v", av)
	}

	// Peer registered: the room opens.
	reg := NewRegisterDoctorPeer(repo, passLocker{})
	if _, err := reg.Execute(context.Background(), apID, doctorUserID, domain.RoleDoctor, "relayId1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	av, _ = uc.Execute(context.Background(), apID)
	if !av.Available || av.Reason != "" {
		t.Errorf("ready: got %+v", av)
	}
}

func TestCheckAvailabilityTerminalStates(t *testing.T) {
	for status, reason := range map[domain.Status]string{
		domain.StatusCanceled: domain.ReasonCanceled,
		domain.StatusFinished: domain.ReasonFinished,
	} {
		repo := inProgressRepo()
		ap := repo.appointments[apID]
		ap.Status = string(status)
		repo.appointments[apID] = ap

		av, err := NewCheckAvailability(repo).Execute(context.Background(), apID)
		if err != nil {
			t.Fatalf("%s: %v", status, err)
		}
		if av.Available || av.Reason != reason {
			t.Errorf("%s: got %+v, want %s", status, av, reason)
		}
	}
}
