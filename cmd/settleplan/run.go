package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/talgya/settleplan/internal/config"
	"github.com/talgya/settleplan/internal/console"
	"github.com/talgya/settleplan/internal/engine"
	"github.com/talgya/settleplan/internal/persistence"
	"github.com/talgya/settleplan/internal/scenario"
	"github.com/talgya/settleplan/internal/world"
)

// setup loads configuration and installs the default logger tagged with a
// fresh run id.
func setup(configPath string) (*config.Config, string, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	runID := uuid.NewString()
	logger := cfg.Logging.NewLogger(cfg.Logging.Writer()).With("run", runID)
	slog.SetDefault(logger)
	return cfg, runID, nil
}

func runSimulation(ctx context.Context, configPath, scenarioPath string, in io.Reader, out io.Writer) error {
	cfg, runID, err := setup(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	sim := engine.NewSimulation()
	sim.Engine.ReportEvery = cfg.Journal.ReportEvery
	if err := sc.Apply(sim); err != nil {
		return err
	}

	var journal console.Journal
	if cfg.Journal.Enabled {
		j, err := persistence.Open(runID)
		if err != nil {
			return err
		}
		defer j.Close()
		if err := j.SaveMeta("scenario", scenarioPath); err != nil {
			return fmt.Errorf("save meta: %w", err)
		}
		journal = j
	}

	slog.Info("settleplan starting", "scenario", scenarioPath, "journal", cfg.Journal.Enabled)
	c := console.New(sim, out, journal, cfg.Engine.MaxStep)
	if err := c.Run(ctx, in); err != nil {
		return err
	}
	slog.Info("settleplan finished", "tick", sim.CurrentTick(), "actions", c.Log().Len())
	return nil
}

func runValidate(configPath, scenarioPath string, out io.Writer) error {
	if _, _, err := setup(configPath); err != nil {
		return err
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	sim := engine.NewSimulation()
	if err := sc.Apply(sim); err != nil {
		return err
	}

	st := sim.Stats()
	fmt.Fprintf(out, "%s: %d settlements, %d facility types, %d plans\n",
		scenarioPath, st.Settlements, st.FacilityTypes, st.Plans)
	return nil
}

func runGenerate(cfg world.GenConfig, out io.Writer) error {
	sc, err := world.Generate(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# generated with seed %d\n", sc.Seed)
	return sc.Format(out)
}
