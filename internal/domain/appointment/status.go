package appointment

import "github.com/barberia-premium/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// InitialStatus picks the status a fresh booking is created with.
func InitialStatus(autoConfirm bool) Status {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}

// Occupies reports whether an appointment in this status consumes its slot.
// Cancelled appointments free the interval; everything else holds it.
func Occupies(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Transition guards
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
