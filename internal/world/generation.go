package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/go-playground/validator/v10"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/scenario"
	"github.com/talgya/settleplan/internal/selection"
)

// MaxScore is the largest impact score a generated facility can carry.
const MaxScore = 5

// GenConfig holds scenario generation parameters.
type GenConfig struct {
	Seed        int64 // Random seed (0 = random)
	Settlements int   `validate:"min=1,max=200"`
	Facilities  int   `validate:"min=1,max=200"`
	MaxCost     int   `validate:"min=1,max=20"` // Longest construction time in ticks
}

// DefaultGenConfig returns a small, balanced configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:        42,
		Settlements: 4,
		Facilities:  9,
		MaxCost:     5,
	}
}

var validate = validator.New()

// Validate checks the configured counts.
func (cfg GenConfig) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	return nil
}

// Generate builds a complete scenario: settlements, a facility catalog and
// one plan per settlement. The same seed always yields the same scenario.
func Generate(cfg GenConfig) (*scenario.Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed + 200))

	sc := &scenario.Scenario{
		Seed:        seed,
		Settlements: PlaceSettlements(seed, cfg.Settlements, rng),
		Facilities:  generateFacilities(seed, cfg, rng),
	}

	codes := []selection.Code{
		selection.CodeNaive, selection.CodeBalanced,
		selection.CodeEconomy, selection.CodeSustainability,
	}
	for _, s := range sc.Settlements {
		sc.Plans = append(sc.Plans, scenario.PlanEntry{
			Settlement: s.Name,
			Policy:     codes[rng.Intn(len(codes))],
		})
	}

	slog.Debug("scenario generated",
		"seed", seed,
		"settlements", len(sc.Settlements),
		"facilities", len(sc.Facilities),
	)
	return sc, nil
}

// generateFacilities samples one noise layer per impact. The strongest layer
// picks the category, except that the first three facilities cover each
// category once so every selection policy has something to build.
func generateFacilities(seed int64, cfg GenConfig, rng *rand.Rand) []facility.Type {
	layers := [3]opensimplex.Noise{
		opensimplex.NewNormalized(seed + 1), // Life quality
		opensimplex.NewNormalized(seed + 2), // Economy
		opensimplex.NewNormalized(seed + 3), // Environment
	}

	used := make(map[string]bool)
	types := make([]facility.Type, 0, cfg.Facilities)
	for i := 0; i < cfg.Facilities; i++ {
		var scores [3]int
		for l, noise := range layers {
			v := octaveNoise(noise, float64(i), float64(l), 3, 0.35, 0.5)
			scores[l] = int(math.Round(v * MaxScore))
		}

		cat := facility.Category(argmax(scores))
		if i < 3 {
			cat = facility.Category(i)
			if scores[i] == 0 {
				scores[i] = 1
			}
		}

		types = append(types, facility.Type{
			Name:        pickName(rng, used, facilityKinds[cat]),
			Category:    cat,
			Cost:        1 + rng.Intn(cfg.MaxCost),
			LifeQuality: scores[0],
			Economy:     scores[1],
			Environment: scores[2],
		})
	}
	return types
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// argmax returns the index of the largest value; ties go to the lowest index.
func argmax(v [3]int) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
