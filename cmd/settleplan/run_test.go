package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/settleplan/internal/world"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGenerateThenValidate(t *testing.T) {
	var generated bytes.Buffer
	require.NoError(t, runGenerate(world.GenConfig{Seed: 5, Settlements: 3, Facilities: 6, MaxCost: 4}, &generated))
	assert.True(t, strings.HasPrefix(generated.String(), "# generated with seed 5\n"))

	cfgPath := writeFile(t, "settleplan.yaml", "logging:\n  level: error\n")
	scenarioPath := writeFile(t, "generated.txt", generated.String())

	var out bytes.Buffer
	require.NoError(t, runValidate(cfgPath, scenarioPath, &out))

	assert.Equal(t, scenarioPath+": 3 settlements, 6 facility types, 3 plans\n", out.String())
}

func TestRunSimulation(t *testing.T) {
	cfgPath := writeFile(t, "settleplan.yaml", "logging:\n  level: error\njournal:\n  report_every: 1\n")
	scenarioPath := writeFile(t, "walkthrough.txt",
		"settlement Ashford 0\nfacility A 1 2 1 2 0\nfacility B 2 1 0 0 3\nplan Ashford nve\n")

	var out bytes.Buffer
	err := runSimulation(context.Background(), cfgPath, scenarioPath, strings.NewReader("step 3\nhistory 1 1\nclose\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, "PlanID: 1\n"+
		"Samples: 1\n"+
		"Tick 3: LifeQuality 1, Economy 2, Environment 3 (nve)\n"+
		"PlanID: 1\n"+
		"SettlementName: Ashford\n"+
		"LifeQuality_Score: 1\n"+
		"Economy_Score: 2\n"+
		"Environment_Score: 3\n\n", out.String())
}

func TestValidate_RejectsBrokenScenario(t *testing.T) {
	cfgPath := writeFile(t, "settleplan.yaml", "logging:\n  level: error\n")
	scenarioPath := writeFile(t, "broken.txt", "settlement Ashford 0\nplan Nowhere nve\n")

	err := runValidate(cfgPath, scenarioPath, &bytes.Buffer{})

	assert.ErrorContains(t, err, `plan for "Nowhere"`)
}

func TestGenerate_RandomSeedIsReproducible(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, runGenerate(world.GenConfig{Seed: 0, Settlements: 3, Facilities: 6, MaxCost: 4}, &first))

	header, body, ok := strings.Cut(first.String(), "\n")
	require.True(t, ok)
	assert.NotEqual(t, "# generated with seed 0", header)

	var seed int64
	_, err := fmt.Sscanf(header, "# generated with seed %d", &seed)
	require.NoError(t, err)

	var again bytes.Buffer
	require.NoError(t, runGenerate(world.GenConfig{Seed: seed, Settlements: 3, Facilities: 6, MaxCost: 4}, &again))
	assert.Equal(t, header+"\n"+body, again.String())
}
