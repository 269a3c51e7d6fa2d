// Package engine provides the discrete tick loop and the simulation that owns
// every settlement, the facility catalog and all plans.
package engine

import (
	"errors"
	"log/slog"
)

// DefaultReportEvery is how often, in ticks, the report callback fires.
const DefaultReportEvery = 1

// Engine drives the simulation forward one discrete tick at a time. Time only
// moves when Advance is called.
type Engine struct {
	Tick        uint64 // Current tick counter (monotonic)
	ReportEvery uint64 // Ticks between OnReport calls; 0 disables reporting

	// Callbacks, populated during setup.
	OnTick   func(tick uint64) error // Every tick
	OnReport func(tick uint64)       // Every ReportEvery ticks
}

// NewEngine creates an engine at tick 0 with default settings.
func NewEngine() *Engine {
	return &Engine{
		ReportEvery: DefaultReportEvery,
	}
}

// Advance runs n ticks. Errors from individual ticks are collected and
// returned together; later ticks still run.
func (e *Engine) Advance(n int) error {
	var errs []error
	for i := 0; i < n; i++ {
		if err := e.step(); err != nil {
			errs = append(errs, err)
		}
	}
	if n > 0 {
		slog.Debug("engine advanced", "ticks", n, "tick", e.Tick, "errors", len(errs))
	}
	return errors.Join(errs...)
}

// step advances the simulation by one tick.
func (e *Engine) step() error {
	e.Tick++

	var err error
	if e.OnTick != nil {
		err = e.OnTick(e.Tick)
	}

	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
	return err
}
