package animals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecSet_NumericMembership(t *testing.T) {
	var recs Recommendations
	require.NoError(t, json.Unmarshal([]byte(`{"items":[],"ids":[2,"5"]}`), &recs))

	var listing []Animal
	require.NoError(t, json.Unmarshal([]byte(`[{"id":2},{"id":"5"},{"id":7}]`), &listing))

	set := NewRecSet(recs.IDs)
	assert.True(t, set.Has(listing[0].ID.Int64()))
	assert.True(t, set.Has(listing[1].ID.Int64()))
	assert.False(t, set.Has(listing[2].ID.Int64()))
	assert.Equal(t, 2, set.Len())
}

func TestRecSet_RankLabels(t *testing.T) {
	set := NewRecSet(idsOf(4, 9, 1))
	assert.Equal(t, LabelStrongest, set.RankLabel(4))
	assert.Equal(t, "", set.RankLabel(9))
	assert.Equal(t, LabelWeakest, set.RankLabel(1))

	single := NewRecSet(idsOf(4))
	assert.Equal(t, LabelStrongest, single.RankLabel(4))

	assert.Equal(t, "", NewRecSet(nil).RankLabel(0))
}
