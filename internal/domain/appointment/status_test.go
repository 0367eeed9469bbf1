package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(false))
	assert.Equal(t, StatusConfirmed, InitialStatus(true))
}

func TestOccupies(t *testing.T) {
	assert.True(t, Occupies(StatusPending))
	assert.True(t, Occupies(StatusConfirmed))
	assert.True(t, Occupies(StatusCompleted))
	assert.False(t, Occupies(StatusCancelled))
}

func TestConfirm(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	assert.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	// confirming twice is an invalid transition
	err := Confirm(ap)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestConfirm_RejectsTerminalStates(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		err := Confirm(ap)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "status %s", status)
	}
}

func TestCancel(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(status)}
		assert.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.NotNil(t, ap.CancelledAt)
	}

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		err := Cancel(ap, now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "status %s", status)
	}
}

func TestComplete(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	assert.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	err := Complete(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}
