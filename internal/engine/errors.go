package engine

import "errors"

var (
	// ErrPlanNotFound is returned when no plan has the requested id.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrSettlementNotFound is returned when no settlement has the requested name.
	ErrSettlementNotFound = errors.New("settlement not found")
)
