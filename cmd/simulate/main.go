package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/salustele/teleconsult-api/internal/relay"
	"github.com/salustele/teleconsult-api/internal/teleclient"
)

// Simulates a full teleconsultation end to end against a running coordinator
// and relay: the doctor starts the consultation and answers, the patient
// polls availability and then calls in.
func main() {
	var (
		apiBase       = flag.String("api", "http://localhost:8080", "coordinator base URL")
		appointmentID = flag.Uint("appointment", 1, "appointment id")
		doctorEmail   = flag.String("doctor-email", "dra.helena@teleconsult.local", "doctor login")
		doctorPass    = flag.String("doctor-pass", "senha123", "doctor password")
		patientEmail  = flag.String("patient-email", "joao@teleconsult.local", "patient login")
		patientPass   = flag.String("patient-pass", "senha123", "patient password")
		relayHost     = flag.String("relay-host", "localhost", "relay host")
		relayPort     = flag.Int("relay-port", 9000, "relay port")
		relayPath     = flag.String("relay-path", "/teleconsult", "relay path")
		relaySecure   = flag.Bool("relay-secure", false, "use wss")
		duration      = flag.Duration("duration", 2*time.Minute, "how long to stay in the call")
	)
	flag.Parse()

	relayParams := relay.Params{Host: *relayHost, Port: *relayPort, Path: *relayPath, Secure: *relaySecure}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	doctorAPI := teleclient.NewAPI(*apiBase)
	if err := doctorAPI.Login(ctx, *doctorEmail, *doctorPass); err != nil {
		log.Fatalf("doctor login: %v", err)
	}
	patientAPI := teleclient.NewAPI(*apiBase)
	if err := patientAPI.Login(ctx, *patientEmail, *patientPass); err != nil {
		log.Fatalf("patient login: %v", err)
	}

	if err := doctorAPI.StartConsultation(ctx, *appointmentID); err != nil {
		log.Fatalf("start consultation: %v", err)
	}
	log.Printf("appointment %d started", *appointmentID)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := teleclient.RunClinician(ctx, teleclient.ClinicianConfig{
			API:           doctorAPI,
			AppointmentID: *appointmentID,
			Relay:         relayParams,
			OnState: func(s teleclient.State) {
				log.Printf("[doctor] %s", s)
			},
		})
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[doctor] exited: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := waitAvailable(ctx, patientAPI, *appointmentID); err != nil {
			log.Printf("[patient] gave up waiting: %v", err)
			return
		}

		err := teleclient.RunPatient(ctx, teleclient.PatientConfig{
			API:           patientAPI,
			AppointmentID: *appointmentID,
			Relay:         relayParams,
			OnState: func(s teleclient.State) {
				log.Printf("[patient] %s", s)
			},
		})
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[patient] exited: %v", err)
		}
	}()

	wg.Wait()
	log.Println("simulation finished")
}

// waitAvailable polls the availability gate until the room opens.
func waitAvailable(ctx context.Context, api *teleclient.API, appointmentID uint) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		av, err := api.Availability(ctx, appointmentID)
		if err != nil {
			return err
		}
		if av.Available {
			return nil
		}
		log.Printf("[patient] not yet available: %s", av.Reason)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
