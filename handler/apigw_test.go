package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestAPIGatewayV1MultiValueFields(t *testing.T) {
	var caught *http.Request

	h := NewAPIGatewayV1Handler(func(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
		caught = r

		w.Header().Add("X-Multi", "a")
		w.Header().Add("X-Multi", "b")
		w.WriteHeader(http.StatusOK)

		return nil
	})

	event := events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/example",
		MultiValueQueryStringParameters: map[string][]string{
			"k": {"1", "2"},
		},
		MultiValueHeaders: map[string][]string{
			"X-In": {"x", "y"},
		},
		RequestContext: events.APIGatewayProxyRequestContext{
			DomainName: "example.execute-api.eu-central-1.amazonaws.com",
		},
	}

	res, err := h(context.Background(), event)
	if err != nil {
		t.Fatal(err)
	}

	if got := caught.URL.Query()["k"]; len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("expected both query values to survive translation, got %v", got)
	}

	if got := caught.Header.Values("X-In"); len(got) != 2 {
		t.Errorf("expected both header values to survive translation, got %v", got)
	}

	if got := res.MultiValueHeaders["X-Multi"]; len(got) != 2 {
		t.Errorf("expected multi-value response headers, got %v", res.MultiValueHeaders)
	}

	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
}

func TestAPIGatewayV2ResponseDefaults(t *testing.T) {
	h := NewAPIGatewayV2Handler(func(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
		w.Header().Add("Set-Cookie", "session=abc")
		_, _ = w.Write([]byte("hello"))
		return nil
	})

	event := events.APIGatewayV2HTTPRequest{
		RawPath: "/example",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: "example.execute-api.eu-central-1.amazonaws.com",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:   http.MethodGet,
				Path:     "/example",
				Protocol: "HTTP/1.1",
				SourceIP: "127.0.0.1",
			},
		},
	}

	res, err := h(context.Background(), event)
	if err != nil {
		t.Fatal(err)
	}

	if res.Headers["Content-Type"] != "text/plain; charset=utf-8" {
		t.Errorf("expected the content type to be sniffed, got %q", res.Headers["Content-Type"])
	}

	if res.Headers["Content-Length"] != "5" {
		t.Errorf("expected Content-Length 5, got %q", res.Headers["Content-Length"])
	}

	if len(res.Cookies) != 1 || res.Cookies[0] != "session=abc" {
		t.Errorf("expected Set-Cookie to move into the cookies list, got %v", res.Cookies)
	}

	if res.Body != "hello" {
		t.Errorf("expected body %q, got %q", "hello", res.Body)
	}
}
