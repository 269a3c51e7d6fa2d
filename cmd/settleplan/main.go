// Command settleplan simulates settlements building facilities under
// different selection policies.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/settleplan/internal/world"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "settleplan",
		Short:        "Settlement construction-plan simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to settleplan.yaml (default: ./settleplan.yaml if present)")

	rootCmd.AddCommand(runCmd(&configPath))
	rootCmd.AddCommand(validateCmd(&configPath))
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario]",
		Short: "Load a scenario and read commands from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), *configPath, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func validateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario]",
		Short: "Check that a scenario parses and applies cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(*configPath, args[0], cmd.OutOrStdout())
		},
	}
}

func generateCmd() *cobra.Command {
	cfg := world.DefaultGenConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random, reproducible scenario to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "generator seed (0 picks one at random)")
	cmd.Flags().IntVar(&cfg.Settlements, "settlements", cfg.Settlements, "number of settlements")
	cmd.Flags().IntVar(&cfg.Facilities, "facilities", cfg.Facilities, "number of facility types")
	cmd.Flags().IntVar(&cfg.MaxCost, "max-cost", cfg.MaxCost, "longest construction time in ticks")
	return cmd
}
