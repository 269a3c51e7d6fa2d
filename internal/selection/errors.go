package selection

import "errors"

var (
	// ErrUnknownPolicy is returned for a policy code outside nve/bal/eco/env.
	ErrUnknownPolicy = errors.New("unknown selection policy")

	// ErrNoEligibleFacility is returned by category policies when the catalog
	// has no entry of the required category.
	ErrNoEligibleFacility = errors.New("no eligible facility of required category")
)
