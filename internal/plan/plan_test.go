package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/plan"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

func newCatalog(t *testing.T, types ...facility.Type) *facility.Catalog {
	t.Helper()
	cat := facility.NewCatalog()
	for _, ft := range types {
		require.NoError(t, cat.Add(ft))
	}
	return cat
}

func settlement(t *testing.T, class social.Class) social.Settlement {
	t.Helper()
	s, err := social.New("Ashford", class)
	require.NoError(t, err)
	return s
}

func queueNames(p *plan.Plan) []string {
	out := []string{}
	for _, f := range p.UnderConstruction() {
		out = append(out, f.Name)
	}
	return out
}

// Catalog from the reference walkthrough: A (economy, cost 2) and B
// (environment, cost 1) in a village with the naive policy.
func walkthroughCatalog(t *testing.T) *facility.Catalog {
	return newCatalog(t,
		facility.Type{Name: "A", Category: facility.CategoryEconomy, Cost: 2, LifeQuality: 1, Economy: 2},
		facility.Type{Name: "B", Category: facility.CategoryEnvironment, Cost: 1, Environment: 3},
	)
}

func TestPlan_WalkthroughTickByTick(t *testing.T) {
	// Arrange
	p := plan.New(1, settlement(t, social.ClassVillage), selection.NewNaive(), walkthroughCatalog(t))

	// Tick 1: A enters the queue and advances 2 → 1.
	require.NoError(t, p.Step())
	assert.Equal(t, []string{"A"}, queueNames(p))
	assert.Equal(t, 1, p.UnderConstruction()[0].TimeLeft)
	assert.Equal(t, plan.StatusBusy, p.Status())
	assert.Equal(t, facility.Scores{}, p.Totals())

	// Tick 2: A completes; the queue is refilled on the next step.
	require.NoError(t, p.Step())
	assert.Empty(t, p.UnderConstruction())
	require.Len(t, p.Completed(), 1)
	assert.Equal(t, "A", p.Completed()[0].Name)
	assert.Equal(t, facility.Scores{LifeQuality: 1, Economy: 2}, p.Totals())
	assert.Equal(t, plan.StatusAvailable, p.Status())

	// Tick 3: B is selected and, costing one tick, completes immediately.
	require.NoError(t, p.Step())
	assert.Empty(t, p.UnderConstruction())
	assert.Equal(t, facility.Scores{LifeQuality: 1, Economy: 2, Environment: 3}, p.Totals())
	assert.Equal(t, plan.StatusAvailable, p.Status())

	// Tick 4: round robin wraps to A again.
	require.NoError(t, p.Step())
	assert.Equal(t, []string{"A"}, queueNames(p))
	assert.Equal(t, plan.StatusBusy, p.Status())
	assert.Equal(t, "Built Facilities list:\n1. A\n2. B\n3. A", p.Policy().String())
}

func TestPlan_QueueNeverExceedsCapacity(t *testing.T) {
	cat := newCatalog(t,
		facility.Type{Name: "Slow", Category: facility.CategoryEconomy, Cost: 5, Economy: 1},
		facility.Type{Name: "Quick", Category: facility.CategoryLifeQuality, Cost: 1, LifeQuality: 1},
		facility.Type{Name: "Mid", Category: facility.CategoryEnvironment, Cost: 3, Environment: 1},
	)
	for _, class := range []social.Class{social.ClassVillage, social.ClassCity, social.ClassMetropolis} {
		t.Run(social.ClassName(class), func(t *testing.T) {
			s := settlement(t, class)
			p := plan.New(1, s, selection.NewNaive(), cat)
			require.Equal(t, int(class)+1, p.Capacity())

			for tick := 0; tick < 50; tick++ {
				require.NoError(t, p.Step())
				assert.LessOrEqual(t, len(p.UnderConstruction()), p.Capacity())
			}
		})
	}
}

func TestPlan_TotalsOnlyCountCompleted(t *testing.T) {
	cat := newCatalog(t,
		facility.Type{Name: "Tower", Category: facility.CategoryLifeQuality, Cost: 10, LifeQuality: 4, Economy: 4, Environment: 4},
	)
	p := plan.New(1, settlement(t, social.ClassMetropolis), selection.NewNaive(), cat)

	for i := 0; i < 9; i++ {
		require.NoError(t, p.Step())
	}
	assert.Len(t, p.UnderConstruction(), 3)
	assert.Equal(t, facility.Scores{}, p.Totals())

	require.NoError(t, p.Step())
	assert.Len(t, p.Completed(), 3)
	assert.Equal(t, facility.Scores{LifeQuality: 12, Economy: 12, Environment: 12}, p.Totals())
}

func TestPlan_CompletionMidQueueKeepsOrder(t *testing.T) {
	cat := newCatalog(t,
		facility.Type{Name: "Long", Category: facility.CategoryEconomy, Cost: 3, Economy: 1},
		facility.Type{Name: "Short", Category: facility.CategoryEconomy, Cost: 1, Economy: 1},
		facility.Type{Name: "Longer", Category: facility.CategoryEconomy, Cost: 4, Economy: 1},
	)
	p := plan.New(1, settlement(t, social.ClassMetropolis), selection.NewNaive(), cat)

	require.NoError(t, p.Step())

	assert.Equal(t, []string{"Long", "Longer"}, queueNames(p))
	require.Len(t, p.Completed(), 1)
	assert.Equal(t, "Short", p.Completed()[0].Name)
	assert.Equal(t, plan.StatusAvailable, p.Status())

	// Next step refills the free slot at the back.
	require.NoError(t, p.Step())
	assert.Equal(t, []string{"Long", "Longer", "Long"}, queueNames(p))
}

func TestPlan_EmptyCatalogFailsWithoutMutation(t *testing.T) {
	p := plan.New(7, settlement(t, social.ClassCity), selection.NewNaive(), facility.NewCatalog())

	err := p.Step()

	require.ErrorIs(t, err, facility.ErrEmptyCatalog)
	assert.Contains(t, err.Error(), "plan 7")
	assert.Empty(t, p.UnderConstruction())
	assert.Equal(t, plan.StatusAvailable, p.Status())
}

func TestPlan_NoEligibleCategoryFails(t *testing.T) {
	cat := newCatalog(t,
		facility.Type{Name: "Park", Category: facility.CategoryEnvironment, Cost: 1, Environment: 1},
	)
	p := plan.New(1, settlement(t, social.ClassVillage), selection.NewEconomy(), cat)

	err := p.Step()

	assert.ErrorIs(t, err, selection.ErrNoEligibleFacility)
	assert.Empty(t, p.UnderConstruction())
}

func TestPlan_SetPolicyKeepsQueue(t *testing.T) {
	cat := newCatalog(t,
		facility.Type{Name: "Mill", Category: facility.CategoryEconomy, Cost: 3, Economy: 2},
		facility.Type{Name: "Park", Category: facility.CategoryEnvironment, Cost: 1, Environment: 2},
	)
	p := plan.New(1, settlement(t, social.ClassVillage), selection.NewNaive(), cat)
	require.NoError(t, p.Step())
	require.Equal(t, []string{"Mill"}, queueNames(p))

	p.SetPolicy(selection.NewSustainability())

	assert.Equal(t, selection.CodeSustainability, p.PolicyCode())
	assert.Equal(t, []string{"Mill"}, queueNames(p))
	require.NoError(t, p.Step())
	require.NoError(t, p.Step()) // Mill completes
	require.NoError(t, p.Step()) // Park selected by the new policy
	require.Len(t, p.Completed(), 2)
	assert.Equal(t, "Park", p.Completed()[1].Name)
}

func TestPlan_CloneIsIsolated(t *testing.T) {
	p := plan.New(1, settlement(t, social.ClassVillage), selection.NewNaive(), walkthroughCatalog(t))
	require.NoError(t, p.Step())

	c := p.Clone()
	require.NoError(t, p.Step())
	require.NoError(t, p.Step())

	assert.NotEqual(t, p.Totals(), c.Totals())
	assert.Equal(t, facility.Scores{}, c.Totals())
	assert.Equal(t, 1, c.UnderConstruction()[0].TimeLeft)
	assert.NotEqual(t, p.Policy().String(), c.Policy().String())

	// The clone continues exactly as its source did.
	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	assert.Equal(t, p.Totals(), c.Totals())
	assert.Equal(t, p.Policy().String(), c.Policy().String())
}

func TestPlan_StateRoundTrip(t *testing.T) {
	cat := walkthroughCatalog(t)
	p := plan.New(3, settlement(t, social.ClassCity), selection.NewBalanced(facility.Scores{}), cat)
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Step())
	}

	restored, err := plan.FromState(p.State(), cat)
	require.NoError(t, err)

	assert.Equal(t, p.ID(), restored.ID())
	assert.Equal(t, p.Status(), restored.Status())
	assert.Equal(t, p.Totals(), restored.Totals())
	assert.Equal(t, queueNames(p), queueNames(restored))
	assert.Equal(t, p.Policy().String(), restored.Policy().String())

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Step())
		require.NoError(t, restored.Step())
	}
	assert.Equal(t, p.Totals(), restored.Totals())
}
