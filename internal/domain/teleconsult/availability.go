package teleconsult

// ===============================
// Availability Gate
// ===============================

type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonNotFound           = "not_found"
	ReasonWaitingDoctorStart = "waiting_for_doctor_start"
	ReasonCanceled           = "canceled"
	ReasonFinished           = "finished"
	ReasonWaitingDoctorPeer  = "waiting_for_doctor_peer"
)

// CheckAvailability tells a prospective patient client whether it may attempt
// to join. Pure function of (found, status, hasPeer); meant to be polled.
// The cases are evaluated in order; after the first four only IN_PROGRESS
// remains.
func CheckAvailability(found bool, status Status, hasPeer bool) Availability {
	switch {
	case !found:
		return Availability{Available: false, Reason: ReasonNotFound}
	case status == StatusScheduled:
		return Availability{Available: false, Reason: ReasonWaitingDoctorStart}
	case status == StatusCanceled:
		return Availability{Available: false, Reason: ReasonCanceled}
	case status == StatusFinished:
		return Availability{Available: false, Reason: ReasonFinished}
	case !hasPeer:
		return Availability{Available: false, Reason: ReasonWaitingDoctorPeer}
	default:
		return Availability{Available: true}
	}
}
