package generator

import (
	"bytes"
	"fmt"

	"github.com/restitch/restitch/internal/maputil"
	"github.com/restitch/restitch/spec"
)

// writeSecuritySchemes emits client scaffolding once per distinct security
// scheme, in sorted scheme-name order. Credential injection rides on request
// editors so hand-written editors and generated ones compose.
func writeSecuritySchemes(buf *bytes.Buffer, doc *spec.Document, cfg *config) error {
	if doc == nil || doc.Components == nil || len(doc.Components.SecuritySchemes) == 0 {
		return nil
	}
	schemes := doc.Components.SecuritySchemes
	names := maputil.SortedKeys(schemes)

	emittedToken := false
	emittedDevice := false
	emittedPKCE := false
	emittedTLSOption := false

	for _, name := range names {
		scheme := schemes[name]
		if scheme == nil {
			continue
		}
		typeName := toTypeName(name)
		switch scheme.Type {
		case "http":
			if scheme.Scheme == "basic" {
				writeBasicAuthOption(buf, cfg, name, typeName)
			} else {
				writeBearerOptions(buf, cfg, name, typeName)
			}
		case "apiKey":
			writeAPIKeyOption(buf, cfg, name, typeName, scheme)
		case "openIdConnect":
			writeBearerOptions(buf, cfg, name, typeName)
			if scheme.OpenIDConnectURL != "" {
				fmt.Fprintf(buf, "// %sDiscoveryURL is the OpenID Connect discovery document location.\n", typeName)
				fmt.Fprintf(buf, "const %sDiscoveryURL = %q\n\n", typeName, scheme.OpenIDConnectURL)
			}
		case "oauth2":
			writeBearerOptions(buf, cfg, name, typeName)
			if !emittedToken {
				writeTokenResponse(buf)
				emittedToken = true
			}
			if !emittedPKCE {
				writePKCEHelper(buf)
				emittedPKCE = true
			}
			if err := writeOAuth2Flows(buf, typeName, scheme, &emittedDevice); err != nil {
				return err
			}
		case "mutualTLS":
			if !emittedTLSOption {
				writeTLSConfigOption(buf, cfg)
				emittedTLSOption = true
			}
			writeTLSConfigurerOption(buf, cfg, name, typeName)
		}
	}
	return nil
}

func writeBearerOptions(buf *bytes.Buffer, cfg *config, schemeName, typeName string) {
	cn := cfg.clientName
	fmt.Fprintf(buf, "// With%sBearerToken installs a static bearer credential for the\n", typeName)
	fmt.Fprintf(buf, "// %q scheme.\n", schemeName)
	fmt.Fprintf(buf, "func With%sBearerToken(token string) %sOption {\n", typeName, cn)
	fmt.Fprintf(buf, "\treturn With%sBearerTokenProvider(func(context.Context) (string, error) {\n", typeName)
	buf.WriteString("\t\treturn token, nil\n")
	buf.WriteString("\t})\n")
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "// With%sBearerTokenProvider installs a lazily evaluated bearer\n", typeName)
	fmt.Fprintf(buf, "// credential for the %q scheme. The provider runs once per request.\n", schemeName)
	fmt.Fprintf(buf, "func With%sBearerTokenProvider(provider func(ctx context.Context) (string, error)) %sOption {\n", typeName, cn)
	fmt.Fprintf(buf, "\treturn WithRequestEditor(func(ctx context.Context, req *http.Request) error {\n")
	buf.WriteString("\t\ttoken, err := provider(ctx)\n")
	buf.WriteString("\t\tif err != nil {\n")
	buf.WriteString("\t\t\treturn err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\treq.Header.Set(\"Authorization\", \"Bearer \"+token)\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t})\n")
	buf.WriteString("}\n\n")
}

func writeBasicAuthOption(buf *bytes.Buffer, cfg *config, schemeName, typeName string) {
	fmt.Fprintf(buf, "// With%sBasicAuth installs a basic credential for the %q scheme.\n", typeName, schemeName)
	fmt.Fprintf(buf, "func With%sBasicAuth(username, password string) %sOption {\n", typeName, cfg.clientName)
	buf.WriteString("\treturn WithRequestEditor(func(_ context.Context, req *http.Request) error {\n")
	buf.WriteString("\t\treq.SetBasicAuth(username, password)\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t})\n")
	buf.WriteString("}\n\n")
}

func writeAPIKeyOption(buf *bytes.Buffer, cfg *config, schemeName, typeName string, scheme *spec.SecurityScheme) {
	fmt.Fprintf(buf, "// With%sAPIKey installs the %q API key, injected at its declared\n", typeName, schemeName)
	fmt.Fprintf(buf, "// location (%s %q).\n", scheme.In, scheme.Name)
	fmt.Fprintf(buf, "func With%sAPIKey(key string) %sOption {\n", typeName, cfg.clientName)
	buf.WriteString("\treturn WithRequestEditor(func(_ context.Context, req *http.Request) error {\n")
	switch scheme.In {
	case spec.LocationQuery:
		buf.WriteString("\t\tq := req.URL.Query()\n")
		fmt.Fprintf(buf, "\t\tq.Set(%q, key)\n", scheme.Name)
		buf.WriteString("\t\treq.URL.RawQuery = q.Encode()\n")
	case spec.LocationHeader:
		fmt.Fprintf(buf, "\t\treq.Header.Set(%q, key)\n", scheme.Name)
	case spec.LocationCookie:
		fmt.Fprintf(buf, "\t\treq.AddCookie(&http.Cookie{Name: %q, Value: key})\n", scheme.Name)
	default:
		fmt.Fprintf(buf, "\t\t// Location %q is not injectable on an HTTP request; the key is\n", scheme.In)
		buf.WriteString("\t\t// accepted but not applied.\n")
		buf.WriteString("\t\t_ = key\n")
	}
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t})\n")
	buf.WriteString("}\n\n")
}

func writeTokenResponse(buf *bytes.Buffer) {
	buf.WriteString("// TokenResponse is an OAuth2 token endpoint response.\n")
	buf.WriteString("type TokenResponse struct {\n")
	buf.WriteString("\tAccessToken  string `json:\"access_token\"`\n")
	buf.WriteString("\tTokenType    string `json:\"token_type\"`\n")
	buf.WriteString("\tExpiresIn    int    `json:\"expires_in,omitempty\"`\n")
	buf.WriteString("\tRefreshToken string `json:\"refresh_token,omitempty\"`\n")
	buf.WriteString("\tScope        string `json:\"scope,omitempty\"`\n")
	buf.WriteString("\tIDToken      string `json:\"id_token,omitempty\"`\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// requestToken posts a form to an OAuth2 token endpoint and decodes the\n")
	buf.WriteString("// token response.\n")
	buf.WriteString("func requestToken(ctx context.Context, httpClient *http.Client, tokenURL string, form url.Values) (*TokenResponse, error) {\n")
	buf.WriteString("\tif httpClient == nil {\n")
	buf.WriteString("\t\thttpClient = http.DefaultClient\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treq, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn nil, err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treq.Header.Set(\"Content-Type\", \"application/x-www-form-urlencoded\")\n")
	buf.WriteString("\tresp, err := httpClient.Do(req)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn nil, err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tdefer resp.Body.Close()\n")
	buf.WriteString("\tif resp.StatusCode < 200 || resp.StatusCode > 299 {\n")
	buf.WriteString("\t\tdata, _ := io.ReadAll(resp.Body)\n")
	buf.WriteString("\t\treturn nil, &ClientError{Op: \"requestToken\", StatusCode: resp.StatusCode, Body: data}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tvar token TokenResponse\n")
	buf.WriteString("\tif err := json.NewDecoder(resp.Body).Decode(&token); err != nil {\n")
	buf.WriteString("\t\treturn nil, err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn &token, nil\n")
	buf.WriteString("}\n\n")
}

func writePKCEHelper(buf *bytes.Buffer) {
	buf.WriteString("// GeneratePKCEVerifier returns a fresh PKCE code verifier and its S256\n")
	buf.WriteString("// challenge.\n")
	buf.WriteString("func GeneratePKCEVerifier() (verifier, challenge string, err error) {\n")
	buf.WriteString("\traw := make([]byte, 32)\n")
	buf.WriteString("\tif _, err := rand.Read(raw); err != nil {\n")
	buf.WriteString("\t\treturn \"\", \"\", err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tverifier = base64.RawURLEncoding.EncodeToString(raw)\n")
	buf.WriteString("\tsum := sha256.Sum256([]byte(verifier))\n")
	buf.WriteString("\tchallenge = base64.RawURLEncoding.EncodeToString(sum[:])\n")
	buf.WriteString("\treturn verifier, challenge, nil\n")
	buf.WriteString("}\n\n")
}

// writeOAuth2Flows emits the token flow helpers a scheme declares:
// authorization code with PKCE, refresh, and device authorization.
func writeOAuth2Flows(buf *bytes.Buffer, typeName string, scheme *spec.SecurityScheme, emittedDevice *bool) error {
	flows := scheme.Flows
	if flows == nil {
		return nil
	}

	if ac := flows.AuthorizationCode; ac != nil {
		fmt.Fprintf(buf, "// %sAuthorizationCodeURL builds the authorization request URL for the\n", typeName)
		buf.WriteString("// authorization code flow with PKCE.\n")
		fmt.Fprintf(buf, "func %sAuthorizationCodeURL(clientID, redirectURI, state, codeChallenge string, scopes []string) string {\n", typeName)
		buf.WriteString("\tq := url.Values{}\n")
		buf.WriteString("\tq.Set(\"response_type\", \"code\")\n")
		buf.WriteString("\tq.Set(\"client_id\", clientID)\n")
		buf.WriteString("\tq.Set(\"redirect_uri\", redirectURI)\n")
		buf.WriteString("\tif state != \"\" {\n")
		buf.WriteString("\t\tq.Set(\"state\", state)\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\tif codeChallenge != \"\" {\n")
		buf.WriteString("\t\tq.Set(\"code_challenge\", codeChallenge)\n")
		buf.WriteString("\t\tq.Set(\"code_challenge_method\", \"S256\")\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\tif len(scopes) > 0 {\n")
		buf.WriteString("\t\tq.Set(\"scope\", strings.Join(scopes, \" \"))\n")
		buf.WriteString("\t}\n")
		fmt.Fprintf(buf, "\treturn %q + \"?\" + q.Encode()\n", ac.AuthorizationURL)
		buf.WriteString("}\n\n")

		fmt.Fprintf(buf, "// %sExchangeAuthorizationCode swaps an authorization code (and its PKCE\n", typeName)
		buf.WriteString("// verifier) for a token.\n")
		fmt.Fprintf(buf, "func %sExchangeAuthorizationCode(ctx context.Context, httpClient *http.Client, clientID, code, redirectURI, codeVerifier string) (*TokenResponse, error) {\n", typeName)
		buf.WriteString("\tform := url.Values{}\n")
		buf.WriteString("\tform.Set(\"grant_type\", \"authorization_code\")\n")
		buf.WriteString("\tform.Set(\"client_id\", clientID)\n")
		buf.WriteString("\tform.Set(\"code\", code)\n")
		buf.WriteString("\tform.Set(\"redirect_uri\", redirectURI)\n")
		buf.WriteString("\tif codeVerifier != \"\" {\n")
		buf.WriteString("\t\tform.Set(\"code_verifier\", codeVerifier)\n")
		buf.WriteString("\t}\n")
		fmt.Fprintf(buf, "\treturn requestToken(ctx, httpClient, %q, form)\n", ac.TokenURL)
		buf.WriteString("}\n\n")

		refreshURL := ac.RefreshURL
		if refreshURL == "" {
			refreshURL = ac.TokenURL
		}
		fmt.Fprintf(buf, "// %sRefreshToken redeems a refresh token.\n", typeName)
		fmt.Fprintf(buf, "func %sRefreshToken(ctx context.Context, httpClient *http.Client, clientID, refreshToken string) (*TokenResponse, error) {\n", typeName)
		buf.WriteString("\tform := url.Values{}\n")
		buf.WriteString("\tform.Set(\"grant_type\", \"refresh_token\")\n")
		buf.WriteString("\tform.Set(\"client_id\", clientID)\n")
		buf.WriteString("\tform.Set(\"refresh_token\", refreshToken)\n")
		fmt.Fprintf(buf, "\treturn requestToken(ctx, httpClient, %q, form)\n", refreshURL)
		buf.WriteString("}\n\n")
	}

	if dev := flows.DeviceAuthorization; dev != nil {
		if !*emittedDevice {
			writeDeviceAuthResponse(buf)
			*emittedDevice = true
		}
		fmt.Fprintf(buf, "// %sDeviceAuthorization starts the device authorization flow.\n", typeName)
		fmt.Fprintf(buf, "func %sDeviceAuthorization(ctx context.Context, httpClient *http.Client, clientID string, scopes []string) (*DeviceAuthResponse, error) {\n", typeName)
		buf.WriteString("\tif httpClient == nil {\n")
		buf.WriteString("\t\thttpClient = http.DefaultClient\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\tform := url.Values{}\n")
		buf.WriteString("\tform.Set(\"client_id\", clientID)\n")
		buf.WriteString("\tif len(scopes) > 0 {\n")
		buf.WriteString("\t\tform.Set(\"scope\", strings.Join(scopes, \" \"))\n")
		buf.WriteString("\t}\n")
		fmt.Fprintf(buf, "\treq, err := http.NewRequestWithContext(ctx, http.MethodPost, %q, strings.NewReader(form.Encode()))\n", dev.DeviceAuthorizationURL)
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString("\t\treturn nil, err\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\treq.Header.Set(\"Content-Type\", \"application/x-www-form-urlencoded\")\n")
		buf.WriteString("\tresp, err := httpClient.Do(req)\n")
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString("\t\treturn nil, err\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\tdefer resp.Body.Close()\n")
		buf.WriteString("\tvar auth DeviceAuthResponse\n")
		buf.WriteString("\tif err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {\n")
		buf.WriteString("\t\treturn nil, err\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\treturn &auth, nil\n")
		buf.WriteString("}\n\n")

		fmt.Fprintf(buf, "// %sPollDeviceToken polls the token endpoint until the device code is\n", typeName)
		buf.WriteString("// redeemed or ctx ends.\n")
		fmt.Fprintf(buf, "func %sPollDeviceToken(ctx context.Context, httpClient *http.Client, clientID, deviceCode string, interval time.Duration) (*TokenResponse, error) {\n", typeName)
		buf.WriteString("\tif interval <= 0 {\n")
		buf.WriteString("\t\tinterval = 5 * time.Second\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\tticker := time.NewTicker(interval)\n")
		buf.WriteString("\tdefer ticker.Stop()\n")
		buf.WriteString("\tfor {\n")
		buf.WriteString("\t\tselect {\n")
		buf.WriteString("\t\tcase <-ctx.Done():\n")
		buf.WriteString("\t\t\treturn nil, ctx.Err()\n")
		buf.WriteString("\t\tcase <-ticker.C:\n")
		buf.WriteString("\t\t}\n")
		buf.WriteString("\t\tform := url.Values{}\n")
		buf.WriteString("\t\tform.Set(\"grant_type\", \"urn:ietf:params:oauth:grant-type:device_code\")\n")
		buf.WriteString("\t\tform.Set(\"client_id\", clientID)\n")
		buf.WriteString("\t\tform.Set(\"device_code\", deviceCode)\n")
		fmt.Fprintf(buf, "\t\ttoken, err := requestToken(ctx, httpClient, %q, form)\n", dev.TokenURL)
		buf.WriteString("\t\tif err == nil {\n")
		buf.WriteString("\t\t\treturn token, nil\n")
		buf.WriteString("\t\t}\n")
		buf.WriteString("\t\tvar clientErr *ClientError\n")
		buf.WriteString("\t\tif !errors.As(err, &clientErr) || clientErr.StatusCode != http.StatusBadRequest {\n")
		buf.WriteString("\t\t\treturn nil, err\n")
		buf.WriteString("\t\t}\n")
		buf.WriteString("\t}\n")
		buf.WriteString("}\n\n")
	}
	return nil
}

func writeDeviceAuthResponse(buf *bytes.Buffer) {
	buf.WriteString("// DeviceAuthResponse is a device authorization endpoint response.\n")
	buf.WriteString("type DeviceAuthResponse struct {\n")
	buf.WriteString("\tDeviceCode              string `json:\"device_code\"`\n")
	buf.WriteString("\tUserCode                string `json:\"user_code\"`\n")
	buf.WriteString("\tVerificationURI         string `json:\"verification_uri\"`\n")
	buf.WriteString("\tVerificationURIComplete string `json:\"verification_uri_complete,omitempty\"`\n")
	buf.WriteString("\tExpiresIn               int    `json:\"expires_in,omitempty\"`\n")
	buf.WriteString("\tInterval                int    `json:\"interval,omitempty\"`\n")
	buf.WriteString("}\n\n")
}

func writeTLSConfigOption(buf *bytes.Buffer, cfg *config) {
	cn := cfg.clientName
	buf.WriteString("// WithTLSConfig installs the client certificate configuration used for\n")
	buf.WriteString("// mutual TLS.\n")
	fmt.Fprintf(buf, "func WithTLSConfig(tlsConfig *tls.Config) %sOption {\n", cn)
	fmt.Fprintf(buf, "\treturn func(c *%s) error {\n", cn)
	buf.WriteString("\t\tc.TLSConfig = tlsConfig\n")
	buf.WriteString("\t\tc.HTTPClient = &http.Client{Transport: &http.Transport{TLSClientConfig: tlsConfig}}\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

func writeTLSConfigurerOption(buf *bytes.Buffer, cfg *config, schemeName, typeName string) {
	cn := cfg.clientName
	fmt.Fprintf(buf, "// With%sTLSConfigurer runs fn against the client's TLS configuration\n", typeName)
	fmt.Fprintf(buf, "// during construction, for the %q scheme.\n", schemeName)
	fmt.Fprintf(buf, "func With%sTLSConfigurer(fn func(*tls.Config) error) %sOption {\n", typeName, cn)
	fmt.Fprintf(buf, "\treturn func(c *%s) error {\n", cn)
	buf.WriteString("\t\tif c.TLSConfig == nil {\n")
	buf.WriteString("\t\t\tc.TLSConfig = &tls.Config{}\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\tif err := fn(c.TLSConfig); err != nil {\n")
	buf.WriteString("\t\t\treturn err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\tc.HTTPClient = &http.Client{Transport: &http.Transport{TLSClientConfig: c.TLSConfig}}\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}
