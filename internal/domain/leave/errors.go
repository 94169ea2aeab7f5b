package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave not found")
	ErrNotPresentOnDate      = errors.New("Employee must be present on the selected leave date to apply for leave.")
	ErrLeaveAlreadyProcessed = errors.New("leave already processed")
)
