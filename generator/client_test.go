package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/spec"
	"github.com/restitch/restitch/stitcherrors"
)

func petstoreDoc() *spec.Document {
	return &spec.Document{
		Info: &spec.Info{Title: "Petstore", Version: "1.0.0"},
		Servers: []*spec.Server{
			{URL: "https://api.example.com/v1"},
		},
		Components: &spec.Components{
			Schemas: map[string]*spec.Schema{
				"Pet": {Types: []string{"object"}},
			},
		},
	}
}

func listPetsEndpoint() *spec.Endpoint {
	return &spec.Endpoint{
		Path:        "/pets",
		Method:      spec.MethodGet,
		OperationID: "listPets",
		Parameters: []*spec.Parameter{
			{Name: "limit", In: spec.LocationQuery, Schema: &spec.Schema{Types: []string{"integer"}, Format: "int32"}},
		},
		Responses: map[string]*spec.Response{
			"200": {Content: map[string]*spec.MediaType{
				"application/json": {Schema: &spec.Schema{
					Types: []string{"array"},
					Items: &spec.Schema{Ref: "#/components/schemas/Pet"},
				}},
			}},
		},
	}
}

func TestGenerateClientValidation(t *testing.T) {
	requireValidationError := func(t *testing.T, endpoints []*spec.Endpoint) *stitcherrors.ValidationError {
		t.Helper()
		_, err := GenerateClient(petstoreDoc(), endpoints)
		require.Error(t, err)
		var verr *stitcherrors.ValidationError
		require.ErrorAs(t, err, &verr)
		return verr
	}

	t.Run("style and content conflict", func(t *testing.T) {
		ep := &spec.Endpoint{
			Path: "/pets", Method: spec.MethodGet,
			Parameters: []*spec.Parameter{{
				Name: "filter", In: spec.LocationQuery, Style: spec.StyleForm,
				Content: map[string]*spec.MediaType{"application/json": {}},
			}},
		}
		verr := requireValidationError(t, []*spec.Endpoint{ep})
		assert.Contains(t, verr.Error(), "style")
	})

	t.Run("multiple querystring parameters", func(t *testing.T) {
		ep := &spec.Endpoint{
			Path: "/search", Method: spec.MethodGet,
			Parameters: []*spec.Parameter{
				{Name: "q1", In: spec.LocationQuerystring, Schema: &spec.Schema{Types: []string{"string"}}},
				{Name: "q2", In: spec.LocationQuerystring, Schema: &spec.Schema{Types: []string{"string"}}},
			},
		}
		requireValidationError(t, []*spec.Endpoint{ep})
	})

	t.Run("non-string querystring", func(t *testing.T) {
		ep := &spec.Endpoint{
			Path: "/search", Method: spec.MethodGet,
			Parameters: []*spec.Parameter{
				{Name: "q", In: spec.LocationQuerystring, Schema: &spec.Schema{Types: []string{"object"}}},
			},
		}
		requireValidationError(t, []*spec.Endpoint{ep})
	})

	t.Run("querystring with query", func(t *testing.T) {
		ep := &spec.Endpoint{
			Path: "/search", Method: spec.MethodGet,
			Parameters: []*spec.Parameter{
				{Name: "q", In: spec.LocationQuerystring, Schema: &spec.Schema{Types: []string{"string"}}},
				{Name: "limit", In: spec.LocationQuery, Schema: &spec.Schema{Types: []string{"integer"}}},
			},
		}
		requireValidationError(t, []*spec.Endpoint{ep})
	})
}

func TestGenerateClientSkipsNilEndpoints(t *testing.T) {
	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{nil, listPetsEndpoint(), nil}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "ListPets(ctx context.Context, limit *int32) ([]Pet, error)")
}

func TestGenerateClientStructure(t *testing.T) {
	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{listPetsEndpoint()}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "// Petstore client.")
	assert.Contains(t, src, "// @apiTitle Petstore")
	assert.Contains(t, src, "// @apiVersion 1.0.0")
	assert.Contains(t, src, "package api")
	assert.Contains(t, src, "type ClientInterface interface {")
	assert.Contains(t, src, "ListPets(ctx context.Context, limit *int32) ([]Pet, error)")
	assert.Contains(t, src, "type Client struct {")
	assert.Contains(t, src, "func NewClient(baseURL string, opts ...ClientOption) (*Client, error)")
	assert.Contains(t, src, "var _ ClientInterface = (*Client)(nil)")
	assert.Contains(t, src, "type ClientError struct {")
	assert.Contains(t, src, "func sortedKeys[V any](m map[string]V) []string {")
}

func TestGenerateClientFormatted(t *testing.T) {
	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{listPetsEndpoint()})
	require.NoError(t, err)

	// goimports inserted the import block for the emitted stdlib calls.
	assert.Contains(t, src, "import (")
	assert.Contains(t, src, `"net/http"`)
	assert.Contains(t, src, `"context"`)
}

func TestGenerateClientBaseURLDefault(t *testing.T) {
	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{listPetsEndpoint()}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, `base = "https://api.example.com/v1"`)
}

func TestGenerateClientServerVariables(t *testing.T) {
	doc := petstoreDoc()
	doc.Servers = []*spec.Server{{
		URL: "https://{region}.example.com/{basePath}",
		Variables: map[string]*spec.ServerVariable{
			"region":   {Default: "eu"},
			"basePath": {Default: "v2"},
		},
	}}

	src, err := GenerateClient(doc, []*spec.Endpoint{listPetsEndpoint()}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, `base = "https://eu.example.com/v2"`)
}

func TestGenerateClientPathParams(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets/{petId}", Method: spec.MethodGet, OperationID: "getPet",
		Parameters: []*spec.Parameter{
			{Name: "petId", In: spec.LocationPath, Required: true, Schema: &spec.Schema{Types: []string{"string"}}},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, `requestPath := "/pets/" + ppPetId`)
	assert.Contains(t, src, "ppPetId := escapePath(fmt.Sprint(petId), false)")
}

func TestGenerateClientMatrixExplodedArray(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/resources{ids}", Method: spec.MethodGet, OperationID: "getByIds",
		Parameters: []*spec.Parameter{{
			Name: "ids", In: spec.LocationPath, Required: true,
			Style: spec.StyleMatrix, Explode: boolPtr(true),
			Schema: &spec.Schema{Types: []string{"array"}, Items: &spec.Schema{Types: []string{"string"}}},
		}},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	// Exploded matrix lists repeat the name per element: ;ids=a;ids=b
	assert.Contains(t, src, `ppIds += ";ids=" + escapePath(fmt.Sprint(v), false)`)
}

func TestGenerateClientQueryStyles(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets", Method: spec.MethodGet, OperationID: "filterPets",
		Parameters: []*spec.Parameter{
			{
				Name: "tags", In: spec.LocationQuery, Required: true,
				Style:  spec.StylePipeDelimited,
				Schema: &spec.Schema{Types: []string{"array"}, Items: &spec.Schema{Types: []string{"string"}}},
			},
			{
				Name: "ids", In: spec.LocationQuery, Required: true,
				Schema: &spec.Schema{Types: []string{"array"}, Items: &spec.Schema{Types: []string{"integer"}}},
			},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	// pipeDelimited collapses with "|"; form (the default) explodes into
	// repeated pairs.
	assert.Contains(t, src, `strings.Join(tagsParts, "|")`)
	assert.Contains(t, src, `qs = append(qs, queryPair("ids", fmt.Sprint(v), false))`)
}

func TestGenerateClientQuerystringBinding(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/search", Method: spec.MethodGet, OperationID: "search",
		Parameters: []*spec.Parameter{
			{Name: "q", In: spec.LocationQuerystring, Required: true, Schema: &spec.Schema{Types: []string{"string"}}},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "rawQuery = q")
	assert.Contains(t, src, `requestURL += "?" + rawQuery`)
}

func TestGenerateClientHeaderAndCookieParams(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets", Method: spec.MethodGet, OperationID: "listPets",
		Parameters: []*spec.Parameter{
			{Name: "X-Request-ID", In: spec.LocationHeader, Required: true, Schema: &spec.Schema{Types: []string{"string"}}},
			{Name: "session", In: spec.LocationCookie, Required: true, Schema: &spec.Schema{Types: []string{"string"}}},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, `req.Header.Set("X-Request-ID", fmt.Sprint(xRequestID))`)
	assert.Contains(t, src, `req.AddCookie(&http.Cookie{Name: "session", Value: fmt.Sprint(session)})`)
}

func TestGenerateClientRequestBody(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets", Method: spec.MethodPost, OperationID: "createPet",
		RequestBody: &spec.RequestBody{
			Required: true,
			Content: map[string]*spec.MediaType{
				"application/json": {Schema: &spec.Schema{Ref: "#/components/schemas/Pet"}},
			},
		},
		Responses: map[string]*spec.Response{
			"201": {Content: map[string]*spec.MediaType{
				"application/json": {Schema: &spec.Schema{Ref: "#/components/schemas/Pet"}},
			}},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "CreatePet(ctx context.Context, body Pet) (Pet, error)")
	assert.Contains(t, src, "payload, err := json.Marshal(body)")
	assert.Contains(t, src, `contentType = "application/json"`)
	assert.Contains(t, src, "if contentType != \"\" {")
}

func TestGenerateClientOptionalBody(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets", Method: spec.MethodPost, OperationID: "createPet",
		RequestBody: &spec.RequestBody{
			Content: map[string]*spec.MediaType{
				"application/json": {Schema: &spec.Schema{Ref: "#/components/schemas/Pet"}},
			},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "CreatePet(ctx context.Context, body *Pet) (struct{}, error)")
	assert.Contains(t, src, "if body != nil {")
}

func TestGenerateClientFormBody(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/pets", Method: spec.MethodPost, OperationID: "createPet",
		RequestBody: &spec.RequestBody{
			Required: true,
			Content: map[string]*spec.MediaType{
				"application/x-www-form-urlencoded": {Schema: &spec.Schema{Ref: "#/components/schemas/Pet"}},
			},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "formBody, err := encodeForm(body, formOpts)")
	assert.Contains(t, src, `contentType = "application/x-www-form-urlencoded"`)
}

func TestGenerateClientSequentialJSON(t *testing.T) {
	ep := &spec.Endpoint{
		Path: "/events", Method: spec.MethodGet, OperationID: "streamEvents",
		Responses: map[string]*spec.Response{
			"200": {Content: map[string]*spec.MediaType{
				"application/jsonl": {Schema: &spec.Schema{
					Types: []string{"array"},
					Items: &spec.Schema{Ref: "#/components/schemas/Pet"},
				}},
			}},
		},
	}

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "dec := json.NewDecoder(resp.Body)")
	assert.Contains(t, src, "out = append(out, item)")
	assert.Contains(t, src, "errors.Is(err, io.EOF)")
}

func TestGenerateClientEndpointTags(t *testing.T) {
	ep := listPetsEndpoint()
	ep.Tags = []string{"pets"}
	ep.Deprecated = true

	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{ep}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "// @operationId listPets")
	assert.Contains(t, src, "// @method get")
	assert.Contains(t, src, "// @path /pets")
	assert.Contains(t, src, `// @tags ["pets"]`)
	assert.Contains(t, src, "// @deprecated true")
	assert.Contains(t, src, "// @param ")
	assert.Contains(t, src, "// @response ")
	assert.Contains(t, src, "// Deprecated: this operation is deprecated.")
}

func TestGenerateClientSecuritySchemes(t *testing.T) {
	doc := petstoreDoc()
	doc.Components.SecuritySchemes = map[string]*spec.SecurityScheme{
		"bearerAuth": {Type: "http", Scheme: "bearer"},
		"basicAuth":  {Type: "http", Scheme: "basic"},
		"apiKey":     {Type: "apiKey", In: spec.LocationHeader, Name: "X-API-Key"},
		"mtls":       {Type: "mutualTLS"},
	}

	src, err := GenerateClient(doc, []*spec.Endpoint{listPetsEndpoint()}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "func WithBearerAuthBearerToken(token string) ClientOption {")
	assert.Contains(t, src, "func WithBearerAuthBearerTokenProvider(provider func(ctx context.Context) (string, error)) ClientOption {")
	assert.Contains(t, src, "func WithBasicAuthBasicAuth(username, password string) ClientOption {")
	assert.Contains(t, src, "func WithApiKeyAPIKey(key string) ClientOption {")
	assert.Contains(t, src, `req.Header.Set("X-API-Key", key)`)
	assert.Contains(t, src, "func WithTLSConfig(tlsConfig *tls.Config) ClientOption {")
	assert.Contains(t, src, "func WithMtlsTLSConfigurer(fn func(*tls.Config) error) ClientOption {")
	assert.Contains(t, src, "TLSConfig *tls.Config")
}

func TestGenerateClientOAuth2Flows(t *testing.T) {
	doc := petstoreDoc()
	doc.Components.SecuritySchemes = map[string]*spec.SecurityScheme{
		"oauth": {
			Type: "oauth2",
			Flows: &spec.OAuthFlows{
				AuthorizationCode: &spec.OAuthFlow{
					AuthorizationURL: "https://auth.example.com/authorize",
					TokenURL:         "https://auth.example.com/token",
				},
				DeviceAuthorization: &spec.OAuthFlow{
					DeviceAuthorizationURL: "https://auth.example.com/device",
					TokenURL:               "https://auth.example.com/token",
				},
			},
		},
	}

	src, err := GenerateClient(doc, []*spec.Endpoint{listPetsEndpoint()}, WithFormatting(false))
	require.NoError(t, err)

	assert.Contains(t, src, "type TokenResponse struct {")
	assert.Contains(t, src, "func GeneratePKCEVerifier() (verifier, challenge string, err error) {")
	assert.Contains(t, src, "func OauthAuthorizationCodeURL(clientID, redirectURI, state, codeChallenge string, scopes []string) string {")
	assert.Contains(t, src, "func OauthExchangeAuthorizationCode(ctx context.Context, httpClient *http.Client, clientID, code, redirectURI, codeVerifier string) (*TokenResponse, error) {")
	assert.Contains(t, src, "func OauthRefreshToken(ctx context.Context, httpClient *http.Client, clientID, refreshToken string) (*TokenResponse, error) {")
	assert.Contains(t, src, "type DeviceAuthResponse struct {")
	assert.Contains(t, src, "func OauthPollDeviceToken(ctx context.Context, httpClient *http.Client, clientID, deviceCode string, interval time.Duration) (*TokenResponse, error) {")
}

func TestGenerateClientDeterministic(t *testing.T) {
	doc := petstoreDoc()
	endpoints := []*spec.Endpoint{listPetsEndpoint()}

	first, err := GenerateClient(doc, endpoints, WithFormatting(false))
	require.NoError(t, err)
	for range 5 {
		again, err := GenerateClient(doc, endpoints, WithFormatting(false))
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestGenerateClientCustomNames(t *testing.T) {
	src, err := GenerateClient(petstoreDoc(), []*spec.Endpoint{listPetsEndpoint()},
		WithFormatting(false), WithPackageName("petstore"), WithClientName("PetClient"))
	require.NoError(t, err)

	assert.Contains(t, src, "package petstore")
	assert.Contains(t, src, "type PetClient struct {")
	assert.Contains(t, src, "func NewPetClient(baseURL string, opts ...PetClientOption) (*PetClient, error)")
	assert.Contains(t, src, "func (c *PetClient) ListPets(")
}
