package selection

import (
	"fmt"

	"github.com/talgya/settleplan/internal/facility"
)

// CategoryRoundRobin cycles through the catalog like Naive but only returns
// entries of one category. Economy and Sustainability are both this type.
type CategoryRoundRobin struct {
	code     Code
	category facility.Category
	last     int // Catalog index of the previous selection, -1 before the first
	log      buildLog
}

// NewEconomy creates a policy that only builds ECONOMY facilities.
func NewEconomy() *CategoryRoundRobin {
	return &CategoryRoundRobin{code: CodeEconomy, category: facility.CategoryEconomy, last: -1}
}

// NewSustainability creates a policy that only builds ENVIRONMENT facilities.
func NewSustainability() *CategoryRoundRobin {
	return &CategoryRoundRobin{code: CodeSustainability, category: facility.CategoryEnvironment, last: -1}
}

// Select scans at most one full lap starting after the previous selection.
func (p *CategoryRoundRobin) Select(catalog []facility.Type) (facility.Type, error) {
	n := len(catalog)
	if n == 0 {
		return facility.Type{}, facility.ErrEmptyCatalog
	}
	start := p.last + 1
	if start >= n {
		start = 0
	}
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if catalog[i].Category == p.category {
			p.last = i
			p.log.record(catalog[i].Name)
			return catalog[i], nil
		}
	}
	return facility.Type{}, fmt.Errorf("%w: %s", ErrNoEligibleFacility, facility.CategoryName(p.category))
}

func (p *CategoryRoundRobin) Code() Code     { return p.code }
func (p *CategoryRoundRobin) String() string { return p.log.String() }

func (p *CategoryRoundRobin) Clone() Policy {
	c := *p
	c.log = p.log.clone()
	return &c
}

func (p *CategoryRoundRobin) State() State {
	return State{Code: p.code, Cursor: p.last, Built: p.log.clone().built}
}
