package world

import (
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/social"
)

// SettlementSeed holds the parameters for an initial settlement placement.
type SettlementSeed struct {
	Coord HexCoord
	Class social.Class
	Score float64 // Desirability score
	Name  string
}

// PlaceSettlements finds the count most desirable sites on a noise-scored hex
// grid and names them. The best sixth become metropolises and the next third
// cities; the rest are villages.
func PlaceSettlements(seed int64, count int, rng *rand.Rand) []social.Settlement {
	seeds := placeSeeds(seed, count)

	numMetropolises := count / 6
	numCities := count / 3
	names := generateNames(rng, len(seeds))
	for i := range seeds {
		seeds[i].Name = names[i]
		switch {
		case i < numMetropolises:
			seeds[i].Class = social.ClassMetropolis
		case i < numMetropolises+numCities:
			seeds[i].Class = social.ClassCity
		default:
			seeds[i].Class = social.ClassVillage
		}
	}

	settlements := make([]social.Settlement, len(seeds))
	for i, s := range seeds {
		settlements[i] = social.Settlement{Name: s.Name, Class: s.Class}
	}
	return settlements
}

// placeSeeds scores every hex and picks the best sites, sorted by score
// descending. Sites keep a minimum spacing that is relaxed when the grid
// cannot fit enough of them.
func placeSeeds(seed int64, count int) []SettlementSeed {
	prosperity := opensimplex.NewNormalized(seed)
	radius := 2 + 2*int(ceilSqrt(count))

	raw := make(map[HexCoord]float64)
	coords := HexesWithin(radius)
	for _, c := range coords {
		x := float64(c.Q) + float64(c.R)*0.5
		y := float64(c.R) * 0.8660254037844386
		raw[c] = octaveNoise(prosperity, x, y, 3, 0.12, 0.5)
	}

	type scored struct {
		coord HexCoord
		score float64
	}
	candidates := make([]scored, 0, len(coords))
	for _, c := range coords {
		candidates = append(candidates, scored{c, settlementScore(raw, c)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var seeds []SettlementSeed
	taken := make(map[HexCoord]bool)
	for minDist := 3; minDist >= 0 && len(seeds) < count; minDist-- {
		for _, c := range candidates {
			if len(seeds) >= count {
				break
			}
			if taken[c.coord] || tooClose(c.coord, seeds, minDist) {
				continue
			}
			taken[c.coord] = true
			seeds = append(seeds, SettlementSeed{Coord: c.coord, Score: c.score})
		}
	}

	sort.SliceStable(seeds, func(i, j int) bool {
		return seeds[i].Score > seeds[j].Score
	})
	return seeds
}

// settlementScore blends a hex's own prosperity with its surroundings.
func settlementScore(raw map[HexCoord]float64, coord HexCoord) float64 {
	score := raw[coord] * 0.7

	sum, n := 0.0, 0
	for _, nc := range coord.Neighbors() {
		if v, ok := raw[nc]; ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		score += sum / float64(n) * 0.3
	}
	return score
}

func tooClose(coord HexCoord, existing []SettlementSeed, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

func ceilSqrt(n int) int {
	r := 0
	for r*r < n {
		r++
	}
	return r
}

var namePrefixes = []string{
	"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
	"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
	"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
	"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
}

var settlementSuffixes = []string{
	"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
	"stead", "wood", "field", "dale", "crest", "vale", "port",
	"town", "bury", "marsh", "well", "brook", "cliff", "moor",
	"ridge", "watch", "fall", "rest", "point", "reach", "helm",
}

var facilityKinds = [...][]string{
	facility.CategoryLifeQuality: {"Clinic", "School", "Library", "Theater", "Bathhouse", "Hospital", "Academy", "Museum"},
	facility.CategoryEconomy:     {"Market", "Mill", "Foundry", "Harbor", "Bank", "Workshop", "Mine", "Warehouse"},
	facility.CategoryEnvironment: {"Park", "Garden", "Windmill", "Orchard", "Reservoir", "Wetland", "Grove", "SolarField"},
}

// generateNames produces procedural settlement names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	used := make(map[string]bool)
	names := make([]string, 0, count)
	for len(names) < count {
		names = append(names, pickName(rng, used, settlementSuffixes))
	}
	return names
}

// pickName draws prefix+suffix pairs until it finds one not in used.
func pickName(rng *rand.Rand, used map[string]bool, suffixes []string) string {
	for {
		name := namePrefixes[rng.Intn(len(namePrefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			return name
		}
	}
}
