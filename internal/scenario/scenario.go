// Package scenario reads and writes the files that seed a simulation with
// settlements, facility types and plans.
//
// Two formats are accepted. The line format has one entry per line:
//
//	settlement <name> <class>
//	facility <name> <category> <cost> <life_quality> <economy> <environment>
//	plan <settlement> <policy>
//
// Blank lines and lines starting with # are ignored. Files ending in .yaml or
// .yml hold the same entries as YAML lists and are shape-checked against an
// embedded JSON schema before decoding.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/talgya/settleplan/internal/engine"
	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

var (
	ErrSyntax        = errors.New("syntax error")
	ErrUnknownEntry  = errors.New("unknown entry kind")
	ErrSchemaFailure = errors.New("scenario does not match schema")
)

// PlanEntry requests a plan for a settlement.
type PlanEntry struct {
	Settlement string
	Policy     selection.Code
}

// Scenario is a parsed scenario file. Entries keep file order within each kind.
type Scenario struct {
	Seed        int64 // Generator seed; zero for scenarios read from files
	Settlements []social.Settlement
	Facilities  []facility.Type
	Plans       []PlanEntry
}

// Load reads a scenario file, choosing the format by extension.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("reading scenario: %w", err)
		}
		return ParseYAML(data)
	default:
		return Parse(f)
	}
}

// Apply installs settlements, then facilities, then plans. It stops at the
// first entry the simulation rejects.
func (sc *Scenario) Apply(sim *engine.Simulation) error {
	for _, s := range sc.Settlements {
		if err := sim.AddSettlement(s); err != nil {
			return fmt.Errorf("settlement %q: %w", s.Name, err)
		}
	}
	for _, ft := range sc.Facilities {
		if err := sim.AddFacility(ft); err != nil {
			return fmt.Errorf("facility %q: %w", ft.Name, err)
		}
	}
	for _, pe := range sc.Plans {
		if _, err := sim.AddPlan(pe.Settlement, pe.Policy); err != nil {
			return fmt.Errorf("plan for %q: %w", pe.Settlement, err)
		}
	}
	slog.Info("scenario applied",
		"settlements", len(sc.Settlements),
		"facilities", len(sc.Facilities),
		"plans", len(sc.Plans),
	)
	return nil
}

// Format writes sc in the line format.
func (sc *Scenario) Format(w io.Writer) error {
	for _, s := range sc.Settlements {
		if _, err := fmt.Fprintf(w, "settlement %s %d\n", s.Name, s.Class); err != nil {
			return err
		}
	}
	for _, ft := range sc.Facilities {
		if _, err := fmt.Fprintf(w, "facility %s %d %d %d %d %d\n",
			ft.Name, ft.Category, ft.Cost, ft.LifeQuality, ft.Economy, ft.Environment); err != nil {
			return err
		}
	}
	for _, pe := range sc.Plans {
		if _, err := fmt.Fprintf(w, "plan %s %s\n", pe.Settlement, pe.Policy); err != nil {
			return err
		}
	}
	return nil
}
