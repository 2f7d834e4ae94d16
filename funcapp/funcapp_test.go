package funcapp

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funcbridge/go-faas-http-adapter/handler"
)

func staticAdapter(body string) handler.AdapterFunc {
	return func(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
		return nil
	}
}

func rawFunctionURLEvent(t *testing.T, method, path string) json.RawMessage {
	t.Helper()

	event := events.LambdaFunctionURLRequest{
		Version: "2.0",
		RawPath: path,
		RequestContext: events.LambdaFunctionURLRequestContext{
			DomainName: "example.lambda-url.eu-central-1.on.aws",
			HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{
				Method:   method,
				Path:     path,
				Protocol: "HTTP/1.1",
				SourceIP: "127.0.0.1",
			},
		},
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return raw
}

func TestNewRequiresAdapter(t *testing.T) {
	app, err := New(nil, AuthLevelAnonymous)

	require.ErrorIs(t, err, ErrNilAdapter)
	assert.Nil(t, app)
}

func TestAppsDoNotShareAdapters(t *testing.T) {
	appA, err := New(staticAdapter("response-a"), AuthLevelAnonymous)
	require.NoError(t, err)

	appB, err := New(staticAdapter("response-b"), AuthLevelFunction)
	require.NoError(t, err)

	raw := rawFunctionURLEvent(t, http.MethodGet, "/example")

	outA, err := appA.Handler()(context.Background(), raw)
	require.NoError(t, err)

	outB, err := appB.Handler()(context.Background(), raw)
	require.NoError(t, err)

	resA, ok := outA.(events.LambdaFunctionURLResponse)
	require.True(t, ok)
	resB, ok := outB.(events.LambdaFunctionURLResponse)
	require.True(t, ok)

	assert.Equal(t, "response-a", resA.Body)
	assert.Equal(t, "response-b", resB.Body)
}

func TestHandlerRoutesAPIGatewayV1(t *testing.T) {
	app, err := New(staticAdapter("ok"), AuthLevelAnonymous)
	require.NoError(t, err)

	raw, err := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/example",
	})
	require.NoError(t, err)

	out, err := app.Handler()(context.Background(), raw)
	require.NoError(t, err)

	res, ok := out.(events.APIGatewayProxyResponse)
	require.True(t, ok, "a v1 proxy event must be answered in the v1 response shape")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", res.Body)
}

func TestHandlerRejectsUnknownPayload(t *testing.T) {
	adapterCalled := false
	app, err := New(func(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
		adapterCalled = true
		return nil
	}, AuthLevelAnonymous)
	require.NoError(t, err)

	out, err := app.Handler()(context.Background(), json.RawMessage(`{"records":[]}`))
	require.NoError(t, err)

	res, ok := out.(events.LambdaFunctionURLResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, adapterCalled)
}

func TestAuthLevelNames(t *testing.T) {
	assert.Equal(t, "anonymous", AuthLevelAnonymous.String())
	assert.Equal(t, "function", AuthLevelFunction.String())
	assert.Equal(t, "admin", AuthLevelAdmin.String())

	b, err := json.Marshal(AuthLevelFunction)
	require.NoError(t, err)
	assert.Equal(t, `"function"`, string(b))
}

func TestHTTPTriggerBinding(t *testing.T) {
	app, err := New(staticAdapter("ok"), AuthLevelAdmin)
	require.NoError(t, err)

	b, err := app.HTTPTriggerBinding(http.MethodGet, http.MethodPost)
	require.NoError(t, err)

	var parsed struct {
		Bindings []map[string]any `json:"bindings"`
	}
	require.NoError(t, json.Unmarshal(b, &parsed))
	require.Len(t, parsed.Bindings, 2)

	trigger := parsed.Bindings[0]
	assert.Equal(t, "admin", trigger["authLevel"])
	assert.Equal(t, "httpTrigger", trigger["type"])
	assert.Equal(t, "in", trigger["direction"])
	assert.Equal(t, "req", trigger["name"])

	out := parsed.Bindings[1]
	assert.Equal(t, "http", out["type"])
	assert.Equal(t, "out", out["direction"])
	assert.NotContains(t, out, "authLevel")
}
