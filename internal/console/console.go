// Package console runs the line-oriented command interpreter on top of a
// simulation.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/talgya/settleplan/internal/action"
	"github.com/talgya/settleplan/internal/engine"
	"github.com/talgya/settleplan/internal/plan"
)

// Journal records executed actions and samples plan scores.
type Journal interface {
	action.HistorySource
	RecordAction(tick uint64, command, status, message string) error
	SavePlanScores(tick uint64, plans []*plan.Plan) error
}

// Console executes commands against one simulation.
type Console struct {
	env     *action.Env
	journal Journal
}

// New creates a console writing to out. journal may be nil, in which case
// history is unavailable. A journal takes over the engine's report callback
// to sample plan scores.
func New(sim *engine.Simulation, out io.Writer, journal Journal, maxStep int) *Console {
	c := &Console{
		env: &action.Env{
			Sim:     sim,
			Out:     out,
			Log:     action.NewLog(),
			Backup:  action.NewBackup(),
			MaxStep: maxStep,
		},
		journal: journal,
	}
	if journal != nil {
		c.env.History = journal
		sim.Engine.OnReport = func(tick uint64) {
			if err := journal.SavePlanScores(tick, sim.Plans); err != nil {
				slog.Warn("sampling plan scores failed", "tick", tick, "error", err)
			}
		}
	}
	return c
}

// Log returns the action log.
func (c *Console) Log() *action.Log { return c.env.Log }

// Execute runs a single action and records it.
func (c *Console) Execute(a action.Action) {
	a.Act(c.env)
	c.env.Log.Append(a)

	if c.journal != nil {
		err := c.journal.RecordAction(c.env.Sim.CurrentTick(), a.String(), a.Status().String(), a.ErrorMessage())
		if err != nil {
			slog.Warn("journal write failed", "action", a.String(), "error", err)
		}
	}
	slog.Debug("action executed", "action", a.String(), "tick", c.env.Sim.CurrentTick())
}

// Run reads commands from in until close, EOF or cancellation. Lines that do
// not parse are reported and skipped; they are not logged.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.env.Sim.Start()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := Parse(scanner.Text())
		if err != nil {
			fmt.Fprintf(c.env.Out, "Error: %v\n", err)
			continue
		}
		if a == nil {
			continue
		}
		c.Execute(a)
		if _, ok := a.(*action.Close); ok {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}
