// Package plan provides the per-settlement construction plan: the queue of
// facilities being built, the completed facilities, and the running totals.
package plan

import (
	"fmt"
	"log/slog"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

// Status is the plan's queue state.
type Status uint8

const (
	StatusAvailable Status = iota // Queue has free slots; refilled on the next step
	StatusBusy                    // Queue is full
)

// StatusName returns the display name for a status.
func StatusName(s Status) string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusBusy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

func (s Status) String() string { return StatusName(s) }

// Plan drives construction for one settlement.
type Plan struct {
	id         int
	settlement social.Settlement
	capacity   int
	catalog    *facility.Catalog // Shared with every plan, never written here
	policy     selection.Policy
	status     Status

	completed         []*facility.Facility
	underConstruction []*facility.Facility

	// Sum of completed facilities' scores only.
	totals facility.Scores
}

// New creates an idle plan. Capacity comes from the settlement class.
func New(id int, s social.Settlement, policy selection.Policy, catalog *facility.Catalog) *Plan {
	return &Plan{
		id:         id,
		settlement: s,
		capacity:   s.Capacity(),
		catalog:    catalog,
		policy:     policy,
		status:     StatusAvailable,
	}
}

// Step runs one tick: tops up the queue when available, then advances every
// facility under construction. A selection error aborts the tick with the plan
// unchanged.
func (p *Plan) Step() error {
	if p.status == StatusAvailable {
		if err := p.fill(); err != nil {
			return fmt.Errorf("plan %d: %w", p.id, err)
		}
	}
	p.advance()
	return nil
}

// fill selects facilities until the queue reaches capacity. New facilities are
// only enqueued once every selection succeeded. Because the catalog is
// append-only, only the first selection of a fill can fail.
func (p *Plan) fill() error {
	free := p.capacity - len(p.underConstruction)
	if free <= 0 {
		p.status = StatusBusy
		return nil
	}
	types := p.catalog.Types()
	started := make([]*facility.Facility, 0, free)
	for len(started) < free {
		ft, err := p.policy.Select(types)
		if err != nil {
			return err
		}
		started = append(started, facility.New(ft, p.settlement.Name))
	}
	p.underConstruction = append(p.underConstruction, started...)
	p.status = StatusBusy
	return nil
}

// advance moves every queued facility forward one tick, in queue order, and
// moves finished ones to the completed list.
func (p *Plan) advance() {
	kept := p.underConstruction[:0]
	for _, f := range p.underConstruction {
		if f.Advance() != facility.StatusOperational {
			kept = append(kept, f)
			continue
		}
		p.completed = append(p.completed, f)
		p.totals = p.totals.Add(f.Scores())
		p.status = StatusAvailable
		slog.Debug("facility operational",
			"plan", p.id,
			"settlement", p.settlement.Name,
			"facility", f.Name,
		)
	}
	clear(p.underConstruction[len(kept):])
	p.underConstruction = kept
}

// SetPolicy replaces the selection policy. Facilities already queued are unaffected.
func (p *Plan) SetPolicy(policy selection.Policy) {
	p.policy = policy
}

// ID returns the plan identifier.
func (p *Plan) ID() int { return p.id }

// Settlement returns the settlement this plan builds for.
func (p *Plan) Settlement() social.Settlement { return p.settlement }

// Capacity returns the maximum number of concurrent constructions.
func (p *Plan) Capacity() int { return p.capacity }

// Status returns the queue state.
func (p *Plan) Status() Status { return p.status }

// Totals returns the summed scores of completed facilities.
func (p *Plan) Totals() facility.Scores { return p.totals }

// Policy returns the active selection policy.
func (p *Plan) Policy() selection.Policy { return p.policy }

// PolicyCode returns the active policy's short code.
func (p *Plan) PolicyCode() selection.Code { return p.policy.Code() }

// Completed returns operational facilities in completion order. Read-only.
func (p *Plan) Completed() []*facility.Facility { return p.completed }

// UnderConstruction returns the construction queue in order. Read-only.
func (p *Plan) UnderConstruction() []*facility.Facility { return p.underConstruction }

// Clone deep-copies the policy and both facility lists. The catalog stays
// shared; the settlement is an immutable value.
func (p *Plan) Clone() *Plan {
	c := *p
	c.policy = p.policy.Clone()
	c.completed = cloneFacilities(p.completed)
	c.underConstruction = cloneFacilities(p.underConstruction)
	return &c
}

func cloneFacilities(in []*facility.Facility) []*facility.Facility {
	if in == nil {
		return nil
	}
	out := make([]*facility.Facility, len(in))
	for i, f := range in {
		out[i] = f.Clone()
	}
	return out
}

func (p *Plan) String() string {
	return fmt.Sprintf("Plan(id=%d, settlement=%s, status=%s, policy=%s, built=%d, building=%d)",
		p.id, p.settlement.Name, StatusName(p.status), p.PolicyCode(),
		len(p.completed), len(p.underConstruction))
}
