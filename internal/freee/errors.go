package freee

import "errors"

var (
	// ErrMissingCompanyID indicates the caller did not supply a company ID.
	// Checked before any network call.
	ErrMissingCompanyID = errors.New("company id is required")
	// ErrMissingYearMonth indicates a workload query without a target
	// year-month. Checked before any network call.
	ErrMissingYearMonth = errors.New("year month is required")
	// ErrUnexpectedStatus indicates a non-success response from the API.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
