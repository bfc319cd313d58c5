package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: 3.1.0
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://api.example.com/v1
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
      required: [id]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
`

func TestLoad(t *testing.T) {
	doc, err := Load([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", doc.OpenAPI)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Petstore", doc.Info.Title)
	require.Len(t, doc.Servers, 1)

	item := doc.Paths["/pets"]
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	assert.Equal(t, "listPets", item.Get.OperationID)

	pet := doc.Components.Schema("Pet")
	require.NotNil(t, pet)
	assert.Equal(t, []string{"id"}, pet.Required)
	assert.Equal(t, []string{"id", "name"}, pet.Properties.Keys())
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("openapi: [unclosed"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Petstore", doc.Info.Title)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	doc, err := Load([]byte(petstoreYAML))
	require.NoError(t, err)

	data, err := Dump(doc)
	require.NoError(t, err)

	again, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Info, again.Info)
	assert.Equal(t, doc.Components.Schema("Pet").Properties.Keys(),
		again.Components.Schema("Pet").Properties.Keys())
}
