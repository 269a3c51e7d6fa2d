package plan

import (
	"fmt"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

// State is the serializable form of a plan, used for backups.
type State struct {
	ID                int
	Settlement        social.Settlement
	Status            Status
	Policy            selection.State
	Completed         []facility.Facility
	UnderConstruction []facility.Facility
	Totals            facility.Scores
}

// State exports a deep copy of the plan.
func (p *Plan) State() State {
	return State{
		ID:                p.id,
		Settlement:        p.settlement,
		Status:            p.status,
		Policy:            p.policy.State(),
		Completed:         facilityValues(p.completed),
		UnderConstruction: facilityValues(p.underConstruction),
		Totals:            p.totals,
	}
}

// FromState rebuilds a plan bound to catalog.
func FromState(s State, catalog *facility.Catalog) (*Plan, error) {
	policy, err := selection.Restore(s.Policy)
	if err != nil {
		return nil, fmt.Errorf("restore plan %d: %w", s.ID, err)
	}
	p := New(s.ID, s.Settlement, policy, catalog)
	p.status = s.Status
	p.completed = facilityPointers(s.Completed)
	p.underConstruction = facilityPointers(s.UnderConstruction)
	p.totals = s.Totals
	return p, nil
}

func facilityValues(in []*facility.Facility) []facility.Facility {
	out := make([]facility.Facility, len(in))
	for i, f := range in {
		out[i] = *f
	}
	return out
}

func facilityPointers(in []facility.Facility) []*facility.Facility {
	out := make([]*facility.Facility, len(in))
	for i := range in {
		f := in[i]
		out[i] = &f
	}
	return out
}
