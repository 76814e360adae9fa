package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/boundvars"
)

func TestPenalty_ZeroWhenTransposeMatricesMaintained(t *testing.T) {
	a := algebra.NewTraversal("x", "r", "y", algebra.HopRange{Min: 1, Max: 1})
	a.Transpose()
	a.Transpose()
	a.Transpose()

	p := penalty([]*algebra.Expression{a}, ScoringInputs{MaintainTransposeMatrices: true})
	assert.Equal(t, 0, p)
}

func TestScore_BoundFilteredLabelOrdering(t *testing.T) {
	// B > F > L > T must all hold independently (spec.md P8).
	assert.Greater(t, B, F)
	assert.Greater(t, F, L)
	assert.Greater(t, L, T)
}

func TestScore_PositionZeroLabeledSourceScoresAtLeastLHigher(t *testing.T) {
	e1 := algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1})
	e2 := algebra.NewTraversal("b", "r2", "c", algebra.HopRange{Min: 1, Max: 1})

	inputs := ScoringInputs{
		FilteredAliases: boundvars.Empty(),
		LabeledAliases:  boundvars.New("a"),
	}

	orderingWithLabelFirst := []*algebra.Expression{e1, e2}
	orderingWithLabelSecond := []*algebra.Expression{e2, e1}

	scoreFirst := score(orderingWithLabelFirst, inputs)
	scoreSecond := score(orderingWithLabelSecond, inputs)

	assert.GreaterOrEqual(t, scoreFirst, scoreSecond+L)
}

func TestScore_BoundEndpointBeatsFilteredBeatsLabeled(t *testing.T) {
	bound := algebra.NewTraversal("bound", "r", "other1", algebra.HopRange{Min: 1, Max: 1})
	filtered := algebra.NewTraversal("filtered", "r", "other2", algebra.HopRange{Min: 1, Max: 1})
	labeled := algebra.NewTraversal("labeled", "r", "other3", algebra.HopRange{Min: 1, Max: 1})

	boundScore := score([]*algebra.Expression{bound}, ScoringInputs{
		FilteredAliases: boundvars.Empty(),
		LabeledAliases:  boundvars.Empty(),
		BoundVars:       boundvars.New("bound"),
	})
	filteredScore := score([]*algebra.Expression{filtered}, ScoringInputs{
		FilteredAliases: boundvars.New("filtered"),
		LabeledAliases:  boundvars.Empty(),
	})
	labeledScore := score([]*algebra.Expression{labeled}, ScoringInputs{
		FilteredAliases: boundvars.Empty(),
		LabeledAliases:  boundvars.New("labeled"),
	})

	assert.Greater(t, boundScore, filteredScore)
	assert.Greater(t, filteredScore, labeledScore)
}

func TestPenalty_FewerPhase1TransposesScoresHigher(t *testing.T) {
	// Two orderings of the same chain; one requires a phase-1 transpose
	// of the second expression, the other doesn't.
	a := algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1})
	forward := algebra.NewTraversal("b", "r2", "c", algebra.HopRange{Min: 1, Max: 1})
	backward := algebra.NewTraversal("c", "r2", "b", algebra.HopRange{Min: 1, Max: 1})

	inputs := ScoringInputs{FilteredAliases: boundvars.Empty(), LabeledAliases: boundvars.Empty()}

	noTransposeNeeded := score([]*algebra.Expression{a, forward}, inputs)
	transposeNeeded := score([]*algebra.Expression{a, backward}, inputs)

	assert.Greater(t, noTransposeNeeded, transposeNeeded)
}
