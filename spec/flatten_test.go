package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPaths_Basic(t *testing.T) {
	paths := Paths{
		"/pets": {
			Summary: "Pet operations",
			Get:     &Operation{OperationID: "listPets", Summary: "List pets"},
			Post:    &Operation{OperationID: "createPet"},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 2)

	get := endpoints[0]
	assert.Equal(t, "/pets", get.Path)
	assert.Equal(t, MethodGet, get.Method)
	assert.Equal(t, "listPets", get.OperationID)
	assert.Equal(t, "List pets", get.Summary, "operation summary wins over path item summary")

	post := endpoints[1]
	assert.Equal(t, MethodPost, post.Method)
	assert.Equal(t, "Pet operations", post.Summary, "path item summary cascades when operation lacks one")
}

func TestFlattenPaths_PathAlwaysFromKey(t *testing.T) {
	paths := Paths{
		"/pets/{petId}": {
			Get: &Operation{OperationID: "getPet"},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/pets/{petId}", endpoints[0].Path)
}

func TestFlattenPaths_ParameterMerge(t *testing.T) {
	shared := &Parameter{Name: "tenant", In: LocationHeader, Required: true}
	pathLevel := &Parameter{Name: "limit", In: LocationQuery}
	override := &Parameter{Name: "limit", In: LocationQuery, Required: true}

	paths := Paths{
		"/pets": {
			Parameters: []*Parameter{shared, pathLevel},
			Get:        &Operation{OperationID: "listPets", Parameters: []*Parameter{override}},
			Delete:     &Operation{OperationID: "clearPets"},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 2)

	get := endpoints[0]
	require.Len(t, get.Parameters, 2)
	assert.Same(t, shared, get.Parameters[0], "path-only parameter passes through")
	assert.Same(t, override, get.Parameters[1], "operation parameter replaces the path-level one")

	del := endpoints[1]
	require.Len(t, del.Parameters, 2)
	assert.Same(t, pathLevel, del.Parameters[1])
}

func TestFlattenPaths_SameNameDifferentLocation(t *testing.T) {
	pathParam := &Parameter{Name: "id", In: LocationPath, Required: true}
	queryParam := &Parameter{Name: "id", In: LocationQuery}

	paths := Paths{
		"/things/{id}": {
			Parameters: []*Parameter{pathParam},
			Get:        &Operation{Parameters: []*Parameter{queryParam}},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 1)
	require.Len(t, endpoints[0].Parameters, 2, "(name, location) identity keeps both")
}

func TestFlattenPaths_ServersFallback(t *testing.T) {
	itemServers := []*Server{{URL: "https://path.example.com"}}
	opServers := []*Server{{URL: "https://op.example.com"}}

	paths := Paths{
		"/a": {
			Servers: itemServers,
			Get:     &Operation{Servers: opServers},
			Put:     &Operation{},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 2)
	assert.Equal(t, opServers, endpoints[0].Servers)
	assert.Equal(t, itemServers, endpoints[1].Servers)
}

func TestFlattenPaths_CustomVerbs(t *testing.T) {
	paths := Paths{
		"/cache": {
			AdditionalOperations: map[string]*Operation{
				"purge":  {OperationID: "purgeCache"},
				"notify": {OperationID: "notifyCache"},
			},
		},
	}

	endpoints := FlattenPaths(paths, nil, nil, "")
	require.Len(t, endpoints, 2)

	// Custom verbs emit in sorted order.
	assert.Equal(t, "notify", endpoints[0].CustomVerb)
	assert.Equal(t, MethodCustom, endpoints[0].Method)
	assert.Equal(t, "NOTIFY", endpoints[0].Verb())
	assert.Equal(t, "purge", endpoints[1].CustomVerb)
}

func TestFlattenPaths_LocalRef(t *testing.T) {
	components := &Components{
		PathItems: map[string]*PathItem{
			"UserOps": {
				Summary: "shared summary",
				Get:     &Operation{OperationID: "getUser"},
			},
		},
	}
	paths := Paths{
		"/users/{id}": {
			Ref:     "#/components/pathItems/UserOps",
			Summary: "overridden summary",
		},
	}

	endpoints := FlattenPaths(paths, components, nil, "")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "getUser", endpoints[0].OperationID)
	assert.Equal(t, "/users/{id}", endpoints[0].Path)
	assert.Equal(t, "overridden summary", endpoints[0].Summary,
		"fields set on the referencing item shallow-override the target")
}

func TestFlattenPaths_RefSkips(t *testing.T) {
	components := &Components{
		PathItems: map[string]*PathItem{
			"Known": {Get: &Operation{OperationID: "ok"}},
		},
	}

	tests := []struct {
		name string
		item *PathItem
		self string
	}{
		{"missing component", &PathItem{Ref: "#/components/pathItems/Missing"}, ""},
		{"multi-segment pointer", &PathItem{Ref: "#/components/pathItems/Too/Deep"}, ""},
		{"authority mismatch", &PathItem{Ref: "https://other.example.com#/components/pathItems/Known"}, "https://self.example.com"},
		{"external without resolver", &PathItem{Ref: "./shared/paths.yaml"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints := FlattenPaths(Paths{"/x": tt.item}, components, nil, tt.self)
			assert.Empty(t, endpoints)
		})
	}
}

func TestFlattenPaths_AuthorityMatchesSelf(t *testing.T) {
	components := &Components{
		PathItems: map[string]*PathItem{
			"Known": {Get: &Operation{OperationID: "ok"}},
		},
	}
	paths := Paths{
		"/x": {Ref: "https://self.example.com#/components/pathItems/Known"},
	}

	endpoints := FlattenPaths(paths, components, nil, "https://self.example.com")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "ok", endpoints[0].OperationID)
}

func TestFlattenPaths_ExternalResolver(t *testing.T) {
	var gotBase, gotKey string
	resolver := func(baseURI, key string) *PathItem {
		gotBase, gotKey = baseURI, key
		return &PathItem{Get: &Operation{OperationID: "remote"}}
	}

	paths := Paths{
		"/remote": {Ref: "./shared/paths.yaml"},
	}

	endpoints := FlattenPaths(paths, nil, resolver, "")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "remote", endpoints[0].OperationID)
	assert.Equal(t, "./shared/paths.yaml", gotBase)
	assert.Equal(t, "/remote", gotKey)
}

func TestFlattenAll(t *testing.T) {
	doc := &Document{
		Paths: Paths{
			"/pets": {Get: &Operation{OperationID: "listPets"}},
		},
		Webhooks: Paths{
			"newPet": {Post: &Operation{OperationID: "onNewPet"}},
		},
	}

	endpoints := FlattenAll(doc, nil)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "/pets", endpoints[0].Path)
	assert.Equal(t, "newPet", endpoints[1].Path, "webhook key becomes the synthetic path")
}
