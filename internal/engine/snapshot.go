package engine

import (
	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/plan"
	"github.com/talgya/settleplan/internal/social"
)

// Snapshot is a deep, serializable copy of a simulation's state.
type Snapshot struct {
	Tick        uint64
	NextPlanID  int
	Running     bool
	Settlements []social.Settlement
	Catalog     []facility.Type
	Plans       []plan.State
}

// Snapshot exports the current state. Nothing in the result aliases the
// live simulation.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.CurrentTick(),
		NextPlanID:  s.nextPlanID,
		Running:     s.Running,
		Settlements: s.Settlements.All(),
		Catalog:     append([]facility.Type(nil), s.Catalog.Types()...),
		Plans:       make([]plan.State, 0, len(s.Plans)),
	}
	for _, p := range s.Plans {
		snap.Plans = append(snap.Plans, p.State())
	}
	return snap
}

// Restore replaces the simulation's state with snap. The live state is only
// swapped once the whole snapshot has been rebuilt. Engine callbacks and
// report settings are kept.
func (s *Simulation) Restore(snap Snapshot) error {
	settlements := social.NewRegistry()
	for _, st := range snap.Settlements {
		if err := settlements.Add(st); err != nil {
			return err
		}
	}
	catalog := facility.NewCatalog()
	for _, ft := range snap.Catalog {
		if err := catalog.Add(ft); err != nil {
			return err
		}
	}
	plans := make([]*plan.Plan, 0, len(snap.Plans))
	index := make(map[int]*plan.Plan, len(snap.Plans))
	for _, ps := range snap.Plans {
		p, err := plan.FromState(ps, catalog)
		if err != nil {
			return err
		}
		plans = append(plans, p)
		index[p.ID()] = p
	}

	s.Settlements = settlements
	s.Catalog = catalog
	s.Plans = plans
	s.planIndex = index
	s.nextPlanID = snap.NextPlanID
	s.Running = snap.Running
	s.Engine.Tick = snap.Tick
	return nil
}
