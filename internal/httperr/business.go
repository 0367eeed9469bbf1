package httperr

import "errors"

// Business error codes shared across use cases and handlers.
const (
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidState        = "invalid_state"
	CodeServiceNotFound     = "service_not_found"
	CodeBarberNotFound      = "barber_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeTooSoon             = "too_soon"
	CodeInvalidTimeWindow   = "invalid_time_window"
	CodeDateInPast          = "date_in_past"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
