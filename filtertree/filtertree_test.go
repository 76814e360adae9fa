package filtertree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectModifiedAliases_FlattensAndOr(t *testing.T) {
	tree := And(
		Compare("a", ""),
		Or(
			Compare("b", "c"),
			Compare("a", ""),
		),
	)

	aliases := CollectModifiedAliases(tree)

	assert.True(t, aliases.Contains("a"))
	assert.True(t, aliases.Contains("b"))
	assert.True(t, aliases.Contains("c"))
	assert.Equal(t, 3, aliases.Cardinality())
}

func TestCollectModifiedAliases_EmptyTree(t *testing.T) {
	aliases := CollectModifiedAliases(And())
	assert.Equal(t, 0, aliases.Cardinality())
}
