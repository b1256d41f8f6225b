package audit

import (
	"log"
	"time"
)

type Event struct {
	AppointmentID uint
	Action        string
	ActorID       uint
	At            time.Time
}

// Dispatcher appends audit entries off the request path. Used by the
// transitions whose audit write is not part of an atomic unit (start, cancel);
// finalize writes through the Logger directly inside its transaction.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Append(
			ev.AppointmentID,
			ev.Action,
			ev.ActorID,
			ev.At,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
	}
}
