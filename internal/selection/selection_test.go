package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/selection"
)

func ft(name string, cat facility.Category, lq, eco, env int) facility.Type {
	return facility.Type{Name: name, Category: cat, Cost: 1, LifeQuality: lq, Economy: eco, Environment: env}
}

func names(t *testing.T, p selection.Policy, catalog []facility.Type, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		got, err := p.Select(catalog)
		require.NoError(t, err)
		out = append(out, got.Name)
	}
	return out
}

func TestNaive_RoundRobin(t *testing.T) {
	catalog := []facility.Type{
		ft("A", facility.CategoryEconomy, 0, 0, 0),
		ft("B", facility.CategoryLifeQuality, 0, 0, 0),
		ft("C", facility.CategoryEnvironment, 0, 0, 0),
	}

	got := names(t, selection.NewNaive(), catalog, 7)

	assert.Equal(t, []string{"A", "B", "C", "A", "B", "C", "A"}, got)
}

func TestNaive_PicksUpAppendedEntries(t *testing.T) {
	catalog := []facility.Type{ft("A", facility.CategoryEconomy, 0, 0, 0)}
	p := selection.NewNaive()

	assert.Equal(t, []string{"A", "A"}, names(t, p, catalog, 2))

	catalog = append(catalog, ft("B", facility.CategoryEconomy, 0, 0, 0))
	assert.Equal(t, []string{"B", "A"}, names(t, p, catalog, 2))
}

func TestPolicies_EmptyCatalog(t *testing.T) {
	for _, code := range []selection.Code{
		selection.CodeNaive, selection.CodeBalanced, selection.CodeEconomy, selection.CodeSustainability,
	} {
		t.Run(string(code), func(t *testing.T) {
			p, err := selection.New(code, facility.Scores{})
			require.NoError(t, err)

			_, err = p.Select(nil)

			assert.ErrorIs(t, err, facility.ErrEmptyCatalog)
			assert.Equal(t, "Built Facilities list:", p.String())
		})
	}
}

func TestEconomy_SingleMatchAlwaysReturned(t *testing.T) {
	catalog := []facility.Type{
		ft("Park", facility.CategoryEnvironment, 0, 0, 1),
		ft("Mill", facility.CategoryEconomy, 0, 1, 0),
		ft("School", facility.CategoryLifeQuality, 1, 0, 0),
	}

	got := names(t, selection.NewEconomy(), catalog, 5)

	assert.Equal(t, []string{"Mill", "Mill", "Mill", "Mill", "Mill"}, got)
}

func TestEconomy_SkipsAndWraps(t *testing.T) {
	catalog := []facility.Type{
		ft("Mill", facility.CategoryEconomy, 0, 1, 0),
		ft("Park", facility.CategoryEnvironment, 0, 0, 1),
		ft("Mine", facility.CategoryEconomy, 0, 2, 0),
		ft("School", facility.CategoryLifeQuality, 1, 0, 0),
	}

	got := names(t, selection.NewEconomy(), catalog, 4)

	assert.Equal(t, []string{"Mill", "Mine", "Mill", "Mine"}, got)
}

func TestSustainability_FiltersEnvironment(t *testing.T) {
	catalog := []facility.Type{
		ft("Mill", facility.CategoryEconomy, 0, 1, 0),
		ft("Park", facility.CategoryEnvironment, 0, 0, 1),
		ft("Solar", facility.CategoryEnvironment, 0, 0, 2),
	}

	got := names(t, selection.NewSustainability(), catalog, 3)

	assert.Equal(t, []string{"Park", "Solar", "Park"}, got)
}

func TestCategory_NoEligibleFailsWithoutLooping(t *testing.T) {
	catalog := []facility.Type{
		ft("Park", facility.CategoryEnvironment, 0, 0, 1),
		ft("School", facility.CategoryLifeQuality, 1, 0, 0),
	}
	p := selection.NewEconomy()

	_, err := p.Select(catalog)

	require.ErrorIs(t, err, selection.ErrNoEligibleFacility)
	assert.Equal(t, -1, p.State().Cursor)
	assert.Empty(t, p.State().Built)
}

func TestImbalance(t *testing.T) {
	assert.Equal(t, 0, selection.Imbalance(facility.Scores{LifeQuality: 4, Economy: 4, Environment: 4}))
	assert.Equal(t, 7, selection.Imbalance(facility.Scores{LifeQuality: -2, Economy: 5, Environment: 1}))
}

func TestBalanced_FirstMinimalWins(t *testing.T) {
	// Imbalances from a zero seed: 5, 3, 3, 7.
	catalog := []facility.Type{
		ft("five", facility.CategoryLifeQuality, 5, 0, 0),
		ft("three-a", facility.CategoryEconomy, 0, 3, 0),
		ft("three-b", facility.CategoryEnvironment, 0, 0, 3),
		ft("seven", facility.CategoryEconomy, 7, 0, 0),
	}
	p := selection.NewBalanced(facility.Scores{})

	got, err := p.Select(catalog)

	require.NoError(t, err)
	assert.Equal(t, "three-a", got.Name)
	assert.Equal(t, facility.Scores{Economy: 3}, p.Totals())
}

func TestBalanced_ZeroImbalanceShortCircuits(t *testing.T) {
	catalog := []facility.Type{
		ft("lopsided", facility.CategoryEconomy, 0, 9, 0),
		ft("even-1", facility.CategoryLifeQuality, 2, 2, 2),
		ft("even-2", facility.CategoryLifeQuality, 1, 1, 1),
	}
	p := selection.NewBalanced(facility.Scores{})

	got, err := p.Select(catalog)

	require.NoError(t, err)
	assert.Equal(t, "even-1", got.Name)
}

func TestBalanced_UsesSeedAndAccumulates(t *testing.T) {
	catalog := []facility.Type{
		ft("Hospital", facility.CategoryLifeQuality, 3, 0, 0),
		ft("Factory", facility.CategoryEconomy, 0, 3, 0),
		ft("Forest", facility.CategoryEnvironment, 0, 0, 3),
	}
	p := selection.NewBalanced(facility.Scores{LifeQuality: 3, Economy: 3})

	got := names(t, p, catalog, 4)

	// Forest evens the seed out exactly, then a three-way tie goes to the
	// first entry and the cycle closes back on a perfect balance.
	assert.Equal(t, []string{"Forest", "Hospital", "Factory", "Forest"}, got)
	assert.Equal(t, facility.Scores{LifeQuality: 6, Economy: 6, Environment: 6}, p.Totals())
}

func TestPolicy_CloneIsIndependent(t *testing.T) {
	catalog := []facility.Type{
		ft("A", facility.CategoryEconomy, 1, 0, 0),
		ft("B", facility.CategoryEconomy, 0, 1, 0),
		ft("C", facility.CategoryEconomy, 0, 0, 1),
	}
	for _, code := range []selection.Code{
		selection.CodeNaive, selection.CodeBalanced, selection.CodeEconomy,
	} {
		t.Run(string(code), func(t *testing.T) {
			p, err := selection.New(code, facility.Scores{})
			require.NoError(t, err)
			names(t, p, catalog, 2)

			c := p.Clone()
			assert.Equal(t, p.String(), c.String())
			assert.Equal(t, p.Code(), c.Code())

			fromSource := names(t, p, catalog, 2)
			fromClone := names(t, c, catalog, 2)

			assert.Equal(t, fromSource, fromClone)
			assert.Equal(t, p.String(), c.String())
		})
	}
}

func TestPolicy_StateRoundTrip(t *testing.T) {
	catalog := []facility.Type{
		ft("Park", facility.CategoryEnvironment, 0, 0, 1),
		ft("Mill", facility.CategoryEconomy, 0, 1, 0),
		ft("Lab", facility.CategoryEnvironment, 1, 0, 1),
	}
	p := selection.NewSustainability()
	names(t, p, catalog, 1)

	restored, err := selection.Restore(p.State())
	require.NoError(t, err)

	assert.Equal(t, selection.CodeSustainability, restored.Code())
	assert.Equal(t, p.String(), restored.String())
	got, err := restored.Select(catalog)
	require.NoError(t, err)
	assert.Equal(t, "Lab", got.Name)
}

func TestBuildLog_Format(t *testing.T) {
	catalog := []facility.Type{
		ft("A", facility.CategoryEconomy, 0, 0, 0),
		ft("B", facility.CategoryEconomy, 0, 0, 0),
	}
	p := selection.NewNaive()
	names(t, p, catalog, 3)

	assert.Equal(t, "Built Facilities list:\n1. A\n2. B\n3. A", p.String())
}

func TestParseCode(t *testing.T) {
	c, err := selection.ParseCode("bal")
	require.NoError(t, err)
	assert.Equal(t, selection.CodeBalanced, c)

	_, err = selection.ParseCode("greedy")
	assert.ErrorIs(t, err, selection.ErrUnknownPolicy)

	_, err = selection.New("greedy", facility.Scores{})
	assert.ErrorIs(t, err, selection.ErrUnknownPolicy)
}
