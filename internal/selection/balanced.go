package selection

import "github.com/talgya/settleplan/internal/facility"

// Balanced picks the type that keeps the three cumulative scores closest
// together. Its totals count every selection, including facilities that are
// still under construction, so they usually run ahead of the plan's totals.
type Balanced struct {
	totals facility.Scores
	log    buildLog
}

// NewBalanced creates a balanced policy seeded with the given totals.
func NewBalanced(seed facility.Scores) *Balanced {
	return &Balanced{totals: seed}
}

// Imbalance is the largest pairwise absolute difference among the three scores.
func Imbalance(s facility.Scores) int {
	d := abs(s.LifeQuality - s.Economy)
	if e := abs(s.LifeQuality - s.Environment); e > d {
		d = e
	}
	if e := abs(s.Economy - s.Environment); e > d {
		d = e
	}
	return d
}

// Select returns the first candidate with minimal imbalance after adding its
// scores to the running totals. A perfectly balanced candidate ends the scan.
func (p *Balanced) Select(catalog []facility.Type) (facility.Type, error) {
	if len(catalog) == 0 {
		return facility.Type{}, facility.ErrEmptyCatalog
	}
	best := 0
	bestImbalance := -1
	for i, ft := range catalog {
		d := Imbalance(p.totals.Add(ft.Scores()))
		if bestImbalance < 0 || d < bestImbalance {
			best, bestImbalance = i, d
		}
		if d == 0 {
			break
		}
	}
	chosen := catalog[best]
	p.totals = p.totals.Add(chosen.Scores())
	p.log.record(chosen.Name)
	return chosen, nil
}

// Totals returns the policy's running totals.
func (p *Balanced) Totals() facility.Scores { return p.totals }

func (p *Balanced) Code() Code     { return CodeBalanced }
func (p *Balanced) String() string { return p.log.String() }

func (p *Balanced) Clone() Policy {
	return &Balanced{totals: p.totals, log: p.log.clone()}
}

func (p *Balanced) State() State {
	return State{Code: CodeBalanced, Totals: p.totals, Built: p.log.clone().built}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
