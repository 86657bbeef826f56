package models

import "errors"

var (
	// ErrGeneral is used for unexpected database errors where we cannot
	// give the user more useful information. The specific error is logged.
	ErrGeneral = errors.New("an error occurred on the server during your request, please contact your server administrator")

	// ErrResourceNotFound is wrapped with the name of the resource that
	// could not be found by the query callback.
	ErrResourceNotFound = errors.New("there is no")

	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrFrequencyInvalid      = errors.New("the recurring frequency must be MONTHLY or YEARLY")
	ErrPaidAmountNegative    = errors.New("the paid amount must not be negative")
	ErrImportInvalid         = errors.New("the import data must contain a categories array and a spends array")
)
