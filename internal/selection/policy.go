// Package selection provides the strategies a plan uses to choose its next
// facility to build.
//
// Implementations:
//   - Naive: round-robin over the whole catalog
//   - Balanced: minimizes the spread between the three cumulative scores
//   - Economy / Sustainability: round-robin restricted to one category
package selection

import (
	"fmt"
	"strings"

	"github.com/talgya/settleplan/internal/facility"
)

// Code is the short display/serialization name of a policy.
type Code string

const (
	CodeNaive          Code = "nve"
	CodeBalanced       Code = "bal"
	CodeEconomy        Code = "eco"
	CodeSustainability Code = "env"
)

// ParseCode validates a policy code.
func ParseCode(s string) (Code, error) {
	switch c := Code(s); c {
	case CodeNaive, CodeBalanced, CodeEconomy, CodeSustainability:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Policy chooses which facility type a plan starts building next. It is called
// once per free slot in the construction queue. A failed Select leaves the
// policy unchanged.
type Policy interface {
	Select(catalog []facility.Type) (facility.Type, error)

	// Code returns the policy's short code.
	Code() Code

	// String returns the running build log.
	String() string

	// Clone returns an independent copy with the same cursor, log and totals.
	Clone() Policy

	// State exports everything needed to rebuild the policy with Restore.
	State() State
}

// State is the serializable form of a policy.
type State struct {
	Code   Code
	Cursor int
	Built  []string
	Totals facility.Scores
}

// New creates a fresh policy. seed is only used by the balanced policy and
// is normally the plan's current totals.
func New(code Code, seed facility.Scores) (Policy, error) {
	switch code {
	case CodeNaive:
		return NewNaive(), nil
	case CodeBalanced:
		return NewBalanced(seed), nil
	case CodeEconomy:
		return NewEconomy(), nil
	case CodeSustainability:
		return NewSustainability(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, code)
}

// Restore rebuilds a policy from its exported state.
func Restore(s State) (Policy, error) {
	p, err := New(s.Code, s.Totals)
	if err != nil {
		return nil, err
	}
	log := buildLog{built: append([]string(nil), s.Built...)}
	switch p := p.(type) {
	case *Naive:
		p.last, p.log = s.Cursor, log
	case *Balanced:
		p.log = log
	case *CategoryRoundRobin:
		p.last, p.log = s.Cursor, log
	}
	return p, nil
}

// buildLog records the names a policy has selected, in order.
type buildLog struct {
	built []string
}

func (l *buildLog) record(name string) {
	l.built = append(l.built, name)
}

func (l buildLog) clone() buildLog {
	return buildLog{built: append([]string(nil), l.built...)}
}

func (l buildLog) String() string {
	var b strings.Builder
	b.WriteString("Built Facilities list:")
	for i, name := range l.built {
		fmt.Fprintf(&b, "\n%d. %s", i+1, name)
	}
	return b.String()
}
