// Simulation ties settlements, the facility catalog and plans together and
// steps every plan once per tick.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/plan"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

// Simulation holds the complete world state.
type Simulation struct {
	Settlements *social.Registry
	Catalog     *facility.Catalog // Shared by every plan
	Plans       []*plan.Plan      // Creation order is step order
	Engine      *Engine
	Running     bool

	planIndex  map[int]*plan.Plan // ID → plan
	nextPlanID int
}

// Stats summarizes the world for reports.
type Stats struct {
	Tick              uint64 `json:"tick"`
	Settlements       int    `json:"settlements"`
	FacilityTypes     int    `json:"facility_types"`
	Plans             int    `json:"plans"`
	Operational       int    `json:"operational"`
	UnderConstruction int    `json:"under_construction"`
}

// NewSimulation creates an empty simulation at tick 0.
func NewSimulation() *Simulation {
	s := &Simulation{
		Settlements: social.NewRegistry(),
		Catalog:     facility.NewCatalog(),
		Engine:      NewEngine(),
		planIndex:   make(map[int]*plan.Plan),
		nextPlanID:  1,
	}
	s.Engine.OnTick = s.tickPlans
	return s
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.Engine.Tick
}

// Start marks the simulation as running.
func (s *Simulation) Start() {
	s.Running = true
	slog.Info("simulation started",
		"settlements", s.Settlements.Len(),
		"facility_types", s.Catalog.Len(),
		"plans", len(s.Plans),
	)
}

// Close marks the simulation as finished.
func (s *Simulation) Close() {
	s.Running = false
	slog.Info("simulation closed", "tick", s.CurrentTick(), "plans", len(s.Plans))
}

// AddSettlement registers a settlement.
func (s *Simulation) AddSettlement(st social.Settlement) error {
	return s.Settlements.Add(st)
}

// AddFacility appends a type to the shared catalog.
func (s *Simulation) AddFacility(ft facility.Type) error {
	return s.Catalog.Add(ft)
}

// Settlement looks a settlement up by name.
func (s *Simulation) Settlement(name string) (social.Settlement, error) {
	st, ok := s.Settlements.Get(name)
	if !ok {
		return social.Settlement{}, fmt.Errorf("%w: %s", ErrSettlementNotFound, name)
	}
	return st, nil
}

// AddPlan creates a plan for the named settlement and assigns it the next id.
// Nothing is registered unless the settlement and policy are both valid.
func (s *Simulation) AddPlan(settlementName string, code selection.Code) (*plan.Plan, error) {
	st, err := s.Settlement(settlementName)
	if err != nil {
		return nil, err
	}
	policy, err := selection.New(code, facility.Scores{})
	if err != nil {
		return nil, err
	}

	p := plan.New(s.nextPlanID, st, policy, s.Catalog)
	s.nextPlanID++
	s.Plans = append(s.Plans, p)
	s.planIndex[p.ID()] = p

	slog.Debug("plan created", "plan", p.ID(), "settlement", st.Name, "policy", code)
	return p, nil
}

// Plan returns the plan with the given id.
func (s *Simulation) Plan(id int) (*plan.Plan, error) {
	p, ok := s.planIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	return p, nil
}

// ChangePolicy installs a fresh policy on a plan. A balanced policy is seeded
// with the plan's current totals.
func (s *Simulation) ChangePolicy(id int, code selection.Code) (previous selection.Code, err error) {
	p, err := s.Plan(id)
	if err != nil {
		return "", err
	}
	policy, err := selection.New(code, p.Totals())
	if err != nil {
		return "", err
	}
	previous = p.PolicyCode()
	p.SetPolicy(policy)
	slog.Debug("policy changed", "plan", id, "from", previous, "to", code)
	return previous, nil
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() error {
	return s.Engine.Advance(1)
}

// Advance runs n ticks.
func (s *Simulation) Advance(n int) error {
	return s.Engine.Advance(n)
}

// tickPlans steps every plan in creation order. A failing plan does not stop
// the others.
func (s *Simulation) tickPlans(tick uint64) error {
	var errs []error
	for _, p := range s.Plans {
		if err := p.Step(); err != nil {
			errs = append(errs, err)
			slog.Warn("plan step failed", "tick", tick, "plan", p.ID(), "error", err)
		}
	}
	return errors.Join(errs...)
}

// Stats computes aggregate statistics.
func (s *Simulation) Stats() Stats {
	st := Stats{
		Tick:          s.CurrentTick(),
		Settlements:   s.Settlements.Len(),
		FacilityTypes: s.Catalog.Len(),
		Plans:         len(s.Plans),
	}
	for _, p := range s.Plans {
		st.Operational += len(p.Completed())
		st.UnderConstruction += len(p.UnderConstruction())
	}
	return st
}
