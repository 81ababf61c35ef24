package export

import "errors"

var (
	// ErrUnknownExportType indicates a run type other than monthly or weekly.
	ErrUnknownExportType = errors.New("unknown export type")
	// ErrInvalidPeriod indicates a period override that is not "YYYY-MM".
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrMissingCompanyID indicates the run was started without a company ID.
	ErrMissingCompanyID = errors.New("company id is required")
)
