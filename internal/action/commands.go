package action

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/plan"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

// SimulateStep advances the simulation by Steps ticks.
type SimulateStep struct {
	base
	Steps int
}

func (a *SimulateStep) Act(env *Env) {
	if a.Steps < 1 || (env.MaxStep > 0 && a.Steps > env.MaxStep) {
		a.fail(env.Out, "Invalid number of steps")
		return
	}
	if err := env.Sim.Advance(a.Steps); err != nil {
		slog.Warn("step finished with plan errors", "steps", a.Steps, "error", err)
		a.fail(env.Out, "Some plans could not select a facility")
		return
	}
	a.complete()
}

func (a *SimulateStep) String() string {
	return fmt.Sprintf("step %d %s", a.Steps, a.status)
}

// AddPlan creates a plan for an existing settlement.
type AddPlan struct {
	base
	Settlement string
	Policy     string
}

func (a *AddPlan) Act(env *Env) {
	code, err := selection.ParseCode(a.Policy)
	if err != nil {
		a.fail(env.Out, "Cannot create this plan")
		return
	}
	if _, err := env.Sim.AddPlan(a.Settlement, code); err != nil {
		a.fail(env.Out, "Cannot create this plan")
		return
	}
	a.complete()
}

func (a *AddPlan) String() string {
	return fmt.Sprintf("plan %s %s %s", a.Settlement, a.Policy, a.status)
}

// AddSettlement registers a new settlement.
type AddSettlement struct {
	base
	Name  string
	Class social.Class
}

func (a *AddSettlement) Act(env *Env) {
	s, err := social.New(a.Name, a.Class)
	if err != nil {
		a.fail(env.Out, "Cannot create this settlement")
		return
	}
	if err := env.Sim.AddSettlement(s); err != nil {
		if errors.Is(err, social.ErrDuplicateSettlement) {
			a.fail(env.Out, "Settlement already exists")
		} else {
			a.fail(env.Out, "Cannot create this settlement")
		}
		return
	}
	a.complete()
}

func (a *AddSettlement) String() string {
	return fmt.Sprintf("settlement %s %d %s", a.Name, a.Class, a.status)
}

// AddFacility appends a facility type to the catalog.
type AddFacility struct {
	base
	Type facility.Type
}

func (a *AddFacility) Act(env *Env) {
	if err := env.Sim.AddFacility(a.Type); err != nil {
		if errors.Is(err, facility.ErrDuplicateType) {
			a.fail(env.Out, "Facility already exists")
		} else {
			a.fail(env.Out, "Cannot create this facility")
		}
		return
	}
	a.complete()
}

func (a *AddFacility) String() string {
	t := a.Type
	return fmt.Sprintf("facility %s %d %d %d %d %d %s",
		t.Name, t.Category, t.Cost, t.LifeQuality, t.Economy, t.Environment, a.status)
}

// PrintPlanStatus prints one plan with its facilities.
type PrintPlanStatus struct {
	base
	PlanID int
}

func (a *PrintPlanStatus) Act(env *Env) {
	p, err := env.Sim.Plan(a.PlanID)
	if err != nil {
		a.fail(env.Out, "Plan doesn't exist")
		return
	}
	t := p.Totals()
	fmt.Fprintf(env.Out, "PlanID: %d\n", p.ID())
	fmt.Fprintf(env.Out, "SettlementName: %s\n", p.Settlement().Name)
	fmt.Fprintf(env.Out, "PlanStatus: %s\n", plan.StatusName(p.Status()))
	fmt.Fprintf(env.Out, "SelectionPolicy: %s\n", p.PolicyCode())
	fmt.Fprintf(env.Out, "LifeQualityScore: %d\n", t.LifeQuality)
	fmt.Fprintf(env.Out, "EconomyScore: %d\n", t.Economy)
	fmt.Fprintf(env.Out, "EnvironmentScore: %d\n", t.Environment)
	for _, list := range [][]*facility.Facility{p.Completed(), p.UnderConstruction()} {
		for _, f := range list {
			fmt.Fprintf(env.Out, "FacilityName: %s\n", f.Name)
			fmt.Fprintf(env.Out, "FacilityStatus: %s\n", facility.StatusName(f.Status))
		}
	}
	a.complete()
}

func (a *PrintPlanStatus) String() string {
	return fmt.Sprintf("planStatus %d %s", a.PlanID, a.status)
}

// ChangePlanPolicy swaps the selection policy of a plan.
type ChangePlanPolicy struct {
	base
	PlanID int
	Policy string
}

func (a *ChangePlanPolicy) Act(env *Env) {
	code, err := selection.ParseCode(a.Policy)
	if err != nil {
		a.fail(env.Out, "Cannot change selection policy")
		return
	}
	previous, err := env.Sim.ChangePolicy(a.PlanID, code)
	if err != nil {
		a.fail(env.Out, "Cannot change selection policy")
		return
	}
	fmt.Fprintf(env.Out, "planID: %d\npreviousPolicy: %s\nnewPolicy: %s\n", a.PlanID, previous, code)
	a.complete()
}

func (a *ChangePlanPolicy) String() string {
	return fmt.Sprintf("changePolicy %d %s %s", a.PlanID, a.Policy, a.status)
}

// PrintActionsLog prints every action executed before it.
type PrintActionsLog struct {
	base
}

func (a *PrintActionsLog) Act(env *Env) {
	fmt.Fprint(env.Out, env.Log.String())
	a.complete()
}

func (a *PrintActionsLog) String() string {
	return "log " + a.status.String()
}

// Close prints the final totals of every plan and stops the simulation.
type Close struct {
	base
}

func (a *Close) Act(env *Env) {
	for _, p := range env.Sim.Plans {
		t := p.Totals()
		fmt.Fprintf(env.Out, "PlanID: %d\n", p.ID())
		fmt.Fprintf(env.Out, "SettlementName: %s\n", p.Settlement().Name)
		fmt.Fprintf(env.Out, "LifeQuality_Score: %d\n", t.LifeQuality)
		fmt.Fprintf(env.Out, "Economy_Score: %d\n", t.Economy)
		fmt.Fprintf(env.Out, "Environment_Score: %d\n", t.Environment)
		fmt.Fprintln(env.Out)
	}
	env.Sim.Close()
	a.complete()
}

func (a *Close) String() string {
	return "close " + a.status.String()
}

// BackupSimulation snapshots the whole simulation, replacing any older backup.
type BackupSimulation struct {
	base
}

func (a *BackupSimulation) Act(env *Env) {
	if err := env.Backup.Save(env.Sim.Snapshot()); err != nil {
		slog.Error("backup failed", "error", err)
		a.fail(env.Out, "Cannot back up simulation")
		return
	}
	slog.Debug("backup saved", "tick", env.Backup.Tick(), "bytes", env.Backup.Size())
	a.complete()
}

func (a *BackupSimulation) String() string {
	return "backup " + a.status.String()
}

// RestoreSimulation replaces the simulation with the last backup. The action
// log is not rewound.
type RestoreSimulation struct {
	base
}

func (a *RestoreSimulation) Act(env *Env) {
	if !env.Backup.Available() {
		a.fail(env.Out, "No backup available")
		return
	}
	snap, err := env.Backup.Load()
	if err == nil {
		err = env.Sim.Restore(snap)
	}
	if err != nil {
		slog.Error("restore failed", "error", err)
		a.fail(env.Out, "Cannot restore simulation")
		return
	}
	slog.Debug("backup restored", "tick", snap.Tick)
	a.complete()
}

func (a *RestoreSimulation) String() string {
	return "restore " + a.status.String()
}

// PlanHistory prints the sampled score history of a plan.
type PlanHistory struct {
	base
	PlanID int
	Limit  int // 0 prints every sample
}

func (a *PlanHistory) Act(env *Env) {
	if env.History == nil {
		a.fail(env.Out, "History unavailable")
		return
	}
	if _, err := env.Sim.Plan(a.PlanID); err != nil {
		a.fail(env.Out, "Plan doesn't exist")
		return
	}
	samples, err := env.History.PlanHistory(a.PlanID, a.Limit)
	if err != nil {
		slog.Error("history query failed", "plan", a.PlanID, "error", err)
		a.fail(env.Out, "History unavailable")
		return
	}
	fmt.Fprintf(env.Out, "PlanID: %d\n", a.PlanID)
	fmt.Fprintf(env.Out, "Samples: %s\n", humanize.Comma(int64(len(samples))))
	for _, s := range samples {
		fmt.Fprintf(env.Out, "Tick %s: LifeQuality %s, Economy %s, Environment %s (%s)\n",
			humanize.Comma(int64(s.Tick)),
			humanize.Comma(int64(s.LifeQuality)),
			humanize.Comma(int64(s.Economy)),
			humanize.Comma(int64(s.Environment)),
			s.Policy,
		)
	}
	a.complete()
}

func (a *PlanHistory) String() string {
	if a.Limit > 0 {
		return "history " + strconv.Itoa(a.PlanID) + " " + strconv.Itoa(a.Limit) + " " + a.status.String()
	}
	return "history " + strconv.Itoa(a.PlanID) + " " + a.status.String()
}
