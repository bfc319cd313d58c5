package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/spec"
)

func ep(id, summary string) *spec.Endpoint {
	return &spec.Endpoint{OperationID: id, Summary: summary}
}

func operationIDs(endpoints []*spec.Endpoint) []string {
	ids := make([]string, len(endpoints))
	for i, e := range endpoints {
		ids[i] = e.OperationID
	}
	return ids
}

func TestMergeEndpointsFreshWins(t *testing.T) {
	existing := []*spec.Endpoint{ep("listPets", "old summary")}
	fresh := []*spec.Endpoint{ep("listPets", "new summary")}

	merged := MergeEndpoints(existing, fresh)
	require.Len(t, merged, 1)
	assert.Equal(t, "new summary", merged[0].Summary)
	assert.Same(t, fresh[0], merged[0])
}

func TestMergeEndpointsOrder(t *testing.T) {
	existing := []*spec.Endpoint{ep("a", ""), ep("b", ""), ep("c", "")}
	fresh := []*spec.Endpoint{ep("d", ""), ep("c", ""), ep("a", "")}

	merged := MergeEndpoints(existing, fresh)
	// Surviving existing order first, then new in fresh order.
	assert.Equal(t, []string{"a", "c", "d"}, operationIDs(merged))
}

func TestMergeEndpointsDropsStale(t *testing.T) {
	existing := []*spec.Endpoint{ep("removed", ""), ep("kept", "")}
	fresh := []*spec.Endpoint{ep("kept", "")}

	merged := MergeEndpoints(existing, fresh)
	assert.Equal(t, []string{"kept"}, operationIDs(merged))
}

func TestMergeEndpointsEmptySets(t *testing.T) {
	assert.Empty(t, MergeEndpoints(nil, nil))
	assert.Equal(t, []string{"a"}, operationIDs(MergeEndpoints(nil, []*spec.Endpoint{ep("a", "")})))
	assert.Empty(t, MergeEndpoints([]*spec.Endpoint{ep("a", "")}, nil))
}

func TestMergeEndpointsIgnoresNilAndDuplicates(t *testing.T) {
	existing := []*spec.Endpoint{nil, ep("a", "")}
	fresh := []*spec.Endpoint{ep("a", "first"), ep("a", "second"), nil}

	merged := MergeEndpoints(existing, fresh)
	require.Len(t, merged, 1)
	// The map index keeps the last duplicate.
	assert.Equal(t, "second", merged[0].Summary)
}
