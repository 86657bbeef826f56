package v1

import (
	"errors"
	"net/http"

	"github.com/credtrack/backend/internal/models"
)

// status returns the appropriate HTTP status code for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errCleanupConfirmation  = errors.New("the confirmation for the cleanup API call was incorrect")
	errDaysNegative         = errors.New("the days parameter must not be negative")
	errFrequencyUnsupported = errors.New("the recurringFrequency filter must be MONTHLY or YEARLY")
)
