// Package funcapp binds a wrapped application to a function host. An App is
// built exactly once during process start-up and handed to the host's
// registration point; it holds the only reference to the wrapped application
// and the authorization level the host is asked to enforce.
package funcapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"

	"github.com/funcbridge/go-faas-http-adapter/handler"
)

// ErrNilAdapter is returned by New when no wrapped application is supplied.
// This is a configuration error; callers should abort start-up.
var ErrNilAdapter = errors.New("funcapp: wrapped application adapter is nil")

// AuthLevel tells the host which credential check to perform before
// invoking the app. It is declarative: the adapter itself never validates
// credentials.
type AuthLevel int

const (
	// AuthLevelAnonymous allows any caller through.
	AuthLevelAnonymous AuthLevel = iota
	// AuthLevelFunction requires a function-scoped host credential.
	AuthLevelFunction
	// AuthLevelAdmin requires the host master credential.
	AuthLevelAdmin
)

func (l AuthLevel) String() string {
	switch l {
	case AuthLevelAnonymous:
		return "anonymous"
	case AuthLevelFunction:
		return "function"
	case AuthLevelAdmin:
		return "admin"
	default:
		return fmt.Sprintf("authlevel(%d)", int(l))
	}
}

func (l AuthLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// App is the single unit exposed to the host: one wrapped application
// reference plus the auth level policy, both fixed at construction. It is
// immutable and safe for concurrent invocations.
type App struct {
	adapter   handler.AdapterFunc
	authLevel AuthLevel
}

// New builds an App around the wrapped application. The adapter reference is
// mandatory; everything else about the application stays opaque.
func New(adapter handler.AdapterFunc, authLevel AuthLevel) (*App, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	return &App{adapter: adapter, authLevel: authLevel}, nil
}

func (a *App) AuthLevel() AuthLevel {
	return a.authLevel
}

// Handler returns the Lambda entry point for this App. The raw payload is
// probed to pick the event shape: API Gateway v1 proxy events carry
// "httpMethod", the 2.0 envelopes (Function URL and API Gateway v2, which
// are field-compatible) carry "requestContext.http.method". Anything else
// is answered with a 400 rather than failing the invocation.
func (a *App) Handler() func(context.Context, json.RawMessage) (any, error) {
	v1 := handler.NewAPIGatewayV1Handler(a.adapter)
	fnURL := handler.NewFunctionURLHandler(a.adapter)

	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		switch {
		case gjson.GetBytes(raw, "httpMethod").String() != "":
			var event events.APIGatewayProxyRequest
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}

			return v1(ctx, event)
		case gjson.GetBytes(raw, "requestContext.http.method").String() != "":
			var event events.LambdaFunctionURLRequest
			if err := json.Unmarshal(raw, &event); err != nil {
				return nil, err
			}

			return fnURL(ctx, event)
		default:
			return events.LambdaFunctionURLResponse{
				StatusCode: http.StatusBadRequest,
				Body:       "unsupported trigger payload",
			}, nil
		}
	}
}

// Start registers the App with the Lambda runtime and blocks for the
// process lifetime.
func (a *App) Start() {
	lambda.Start(a.Handler())
}

// CustomHandlerHTTP returns the loopback endpoint served to the Azure
// Functions host.
func (a *App) CustomHandlerHTTP() http.Handler {
	return handler.NewCustomHandlerHTTP(handler.NewAzureFunctionsHandler(a.adapter))
}

// StartCustomHandler serves the Azure Functions custom handler listener on
// the port the host assigns, and blocks until the listener fails or the
// process is torn down.
func (a *App) StartCustomHandler() error {
	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = "8080"
	}

	return http.ListenAndServe(":"+port, a.CustomHandlerHTTP())
}

type binding struct {
	AuthLevel string   `json:"authLevel,omitempty"`
	Type      string   `json:"type"`
	Direction string   `json:"direction"`
	Name      string   `json:"name"`
	Methods   []string `json:"methods,omitempty"`
}

type functionJSON struct {
	Bindings []binding `json:"bindings"`
}

// HTTPTriggerBinding renders the function.json binding metadata for this
// App. The auth level lands here; enforcing it is the host's job.
func (a *App) HTTPTriggerBinding(methods ...string) ([]byte, error) {
	return json.MarshalIndent(functionJSON{
		Bindings: []binding{
			{
				AuthLevel: a.authLevel.String(),
				Type:      "httpTrigger",
				Direction: "in",
				Name:      "req",
				Methods:   methods,
			},
			{
				Type:      "http",
				Direction: "out",
				Name:      "res",
			},
		},
	}, "", "  ")
}
