package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaths_Grouping(t *testing.T) {
	endpoints := []*Endpoint{
		{Path: "/pets", Method: MethodGet, OperationID: "listPets"},
		{Path: "/pets", Method: MethodPost, OperationID: "createPet"},
		{Path: "/cache", Method: MethodCustom, CustomVerb: "purge", OperationID: "purgeCache"},
	}

	paths := BuildPaths(endpoints, false)
	require.Len(t, paths, 2)

	pets := paths["/pets"]
	require.NotNil(t, pets)
	require.NotNil(t, pets.Get)
	assert.Equal(t, "listPets", pets.Get.OperationID)
	require.NotNil(t, pets.Post)
	assert.Equal(t, "createPet", pets.Post.OperationID)

	cache := paths["/cache"]
	require.NotNil(t, cache)
	require.Contains(t, cache.AdditionalOperations, "purge")
	assert.Equal(t, "purgeCache", cache.AdditionalOperations["purge"].OperationID)
}

func TestBuildPaths_LiftUnanimous(t *testing.T) {
	params := []*Parameter{{Name: "tenant", In: LocationHeader}}
	endpoints := []*Endpoint{
		{Path: "/pets", Method: MethodGet, Summary: "Pets", Parameters: params},
		{Path: "/pets", Method: MethodPost, Summary: "Pets", Parameters: params},
	}

	paths := BuildPaths(endpoints, true)
	pets := paths["/pets"]
	require.NotNil(t, pets)

	assert.Equal(t, "Pets", pets.Summary, "unanimous summary is lifted")
	assert.Empty(t, pets.Get.Summary, "lifted facet is cleared from operations")
	assert.Empty(t, pets.Post.Summary)
	assert.Equal(t, params, pets.Parameters)
	assert.Nil(t, pets.Get.Parameters)
}

func TestBuildPaths_NoPartialLift(t *testing.T) {
	endpoints := []*Endpoint{
		{Path: "/pets", Method: MethodGet, Summary: "Pets"},
		{Path: "/pets", Method: MethodPost, Summary: "Other"},
	}

	paths := BuildPaths(endpoints, true)
	pets := paths["/pets"]

	assert.Empty(t, pets.Summary, "divergent values are never lifted")
	assert.Equal(t, "Pets", pets.Get.Summary)
	assert.Equal(t, "Other", pets.Post.Summary)
}

func TestBuildPaths_LiftDisabled(t *testing.T) {
	endpoints := []*Endpoint{
		{Path: "/pets", Method: MethodGet, Summary: "Pets"},
		{Path: "/pets", Method: MethodPost, Summary: "Pets"},
	}

	paths := BuildPaths(endpoints, false)
	pets := paths["/pets"]

	assert.Empty(t, pets.Summary)
	assert.Equal(t, "Pets", pets.Get.Summary)
}

func TestBuildPaths_RoundTrip(t *testing.T) {
	original := Paths{
		"/pets": {
			Get:  &Operation{OperationID: "listPets", Summary: "List"},
			Post: &Operation{OperationID: "createPet"},
		},
		"/pets/{petId}": {
			Get: &Operation{OperationID: "getPet"},
		},
	}

	rebuilt := BuildPaths(FlattenPaths(original, nil, nil, ""), false)
	require.Len(t, rebuilt, 2)
	assert.Equal(t, "listPets", rebuilt["/pets"].Get.OperationID)
	assert.Equal(t, "List", rebuilt["/pets"].Get.Summary)
	assert.Equal(t, "createPet", rebuilt["/pets"].Post.OperationID)
	assert.Equal(t, "getPet", rebuilt["/pets/{petId}"].Get.OperationID)
}
