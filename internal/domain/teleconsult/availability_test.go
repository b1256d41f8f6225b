package teleconsult

import "testing"

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		found     bool
		status    Status
		hasPeer   bool
		available bool
		reason    string
	}{
		{"not found", false, "", false, false, ReasonNotFound},
		{"not found ignores peer", false, StatusInProgress, true, false, ReasonNotFound},
		{"scheduled", true, StatusScheduled, false, false, ReasonWaitingDoctorStart},
		{"scheduled with stale peer", true, StatusScheduled, true, false, ReasonWaitingDoctorStart},
		{"canceled", true, StatusCanceled, false, false, ReasonCanceled},
		{"finished", true, StatusFinished, true, false, ReasonFinished},
		{"in progress without peer", true, StatusInProgress, false, false, ReasonWaitingDoctorPeer},
		{"in progress with peer", true, StatusInProgress, true, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAvailability(tt.found, tt.status, tt.hasPeer)
			if got.Available != tt.available {
				t.Errorf("Available = %v, want %v", got.Available, tt.available)
			}
			if got.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.reason)
			}
		})
	}
}

func TestCheckAvailabilityIsStable(t *testing.T) {
	first := CheckAvailability(true, StatusInProgress, false)
	second := CheckAvailability(true, StatusInProgress, false)
	if first != second {
		t.Errorf("same input produced %+v and %+v", first, second)
	}
}
