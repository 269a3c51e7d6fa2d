package facility

import "fmt"

// Status is the construction state of a facility instance.
type Status uint8

const (
	StatusUnderConstruction Status = iota
	StatusOperational              // Terminal
)

// StatusName returns the display name for a status.
func StatusName(s Status) string {
	switch s {
	case StatusUnderConstruction:
		return "UNDER_CONSTRUCTIONS"
	case StatusOperational:
		return "OPERATIONAL"
	default:
		return "UNKNOWN"
	}
}

func (s Status) String() string { return StatusName(s) }

// Facility is a Type being built (or already built) for one settlement.
type Facility struct {
	Type
	Settlement string `json:"settlement"`
	Status     Status `json:"status"`
	TimeLeft   int    `json:"time_left"` // Ticks until operational; never increases
}

// New starts construction of t for the named settlement.
func New(t Type, settlement string) *Facility {
	return &Facility{
		Type:       t,
		Settlement: settlement,
		Status:     StatusUnderConstruction,
		TimeLeft:   t.Cost,
	}
}

// Advance moves construction forward by one tick and returns the resulting status.
// A facility with no time left is left untouched.
func (f *Facility) Advance() Status {
	if f.TimeLeft == 0 {
		return f.Status
	}
	f.TimeLeft--
	if f.TimeLeft == 0 {
		f.Status = StatusOperational
	}
	return f.Status
}

// Operational reports whether construction has finished.
func (f *Facility) Operational() bool {
	return f.Status == StatusOperational
}

// Clone returns an independent copy.
func (f *Facility) Clone() *Facility {
	c := *f
	return &c
}

func (f *Facility) String() string {
	return fmt.Sprintf("%s (%s, %s, %d left)", f.Name, f.Settlement, StatusName(f.Status), f.TimeLeft)
}
