package selection

import "github.com/talgya/settleplan/internal/facility"

// Naive walks the catalog in order and wraps back to the first entry.
type Naive struct {
	last int // Index of the previous selection, -1 before the first
	log  buildLog
}

// NewNaive creates a round-robin policy positioned before the first entry.
func NewNaive() *Naive {
	return &Naive{last: -1}
}

func (p *Naive) Select(catalog []facility.Type) (facility.Type, error) {
	if len(catalog) == 0 {
		return facility.Type{}, facility.ErrEmptyCatalog
	}
	next := p.last + 1
	if next >= len(catalog) {
		next = 0
	}
	p.last = next
	p.log.record(catalog[next].Name)
	return catalog[next], nil
}

func (p *Naive) Code() Code     { return CodeNaive }
func (p *Naive) String() string { return p.log.String() }

func (p *Naive) Clone() Policy {
	return &Naive{last: p.last, log: p.log.clone()}
}

func (p *Naive) State() State {
	return State{Code: CodeNaive, Cursor: p.last, Built: p.log.clone().built}
}
