package teleconsult

import (
	"testing"

	"github.com/salustele/teleconsult-api/internal/httperr"
	"github.com/salustele/teleconsult-api/internal/models"
)

func TestStart(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Start(ap); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if ap.Status != string(StatusInProgress) {
		t.Errorf("status = %s, want IN_PROGRESS", ap.Status)
	}

	for _, s := range []Status{StatusInProgress, StatusFinished, StatusCanceled} {
		ap := &models.Appointment{Status: string(s)}
		if err := Start(ap); httperr.BusinessCode(err) != "invalid_state" {
			t.Errorf("Start from %s: err = %v, want invalid_state", s, err)
		}
		if ap.Status != string(s) {
			t.Errorf("Start from %s mutated status to %s", s, ap.Status)
		}
	}
}

func TestCancel(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusInProgress} {
		ap := &models.Appointment{Status: string(s)}
		if err := Cancel(ap); err != nil {
			t.Fatalf("Cancel from %s: %v", s, err)
		}
		if ap.Status != string(StatusCanceled) {
			t.Errorf("status = %s, want CANCELED", ap.Status)
		}
	}

	for _, s := range []Status{StatusFinished, StatusCanceled} {
		ap := &models.Appointment{Status: string(s)}
		if err := Cancel(ap); httperr.BusinessCode(err) != "invalid_state" {
			t.Errorf("Cancel from %s: err = %v, want invalid_state", s, err)
		}
	}
}

func TestFinish(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusInProgress)}
	already, err := Finish(ap)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if already {
		t.Error("first finish reported alreadyFinished")
	}
	if ap.Status != string(StatusFinished) {
		t.Errorf("status = %s, want FINISHED", ap.Status)
	}

	already, err = Finish(ap)
	if err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	if !already {
		t.Error("second finish did not report alreadyFinished")
	}
}

func TestFinishScheduled(t *testing.T) {
	// Direct finish from SCHEDULED is allowed; the session never opened.
	ap := &models.Appointment{Status: string(StatusScheduled)}
	already, err := Finish(ap)
	if err != nil || already {
		t.Fatalf("Finish from SCHEDULED: already=%v err=%v", already, err)
	}
	if ap.Status != string(StatusFinished) {
		t.Errorf("status = %s, want FINISHED", ap.Status)
	}
}

func TestFinishCanceled(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCanceled)}
	already, err := Finish(ap)
	if already {
		t.Error("canceled reported alreadyFinished")
	}
	if httperr.BusinessCode(err) != "invalid_state" {
		t.Errorf("err = %v, want invalid_state", err)
	}
	if ap.Status != string(StatusCanceled) {
		t.Errorf("canceled appointment mutated to %s", ap.Status)
	}
}
