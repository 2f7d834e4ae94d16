//go:build !faasadapter.partial || (faasadapter.partial && faasadapter.azure)

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// CustomHandlerRequest is the invocation envelope the Azure Functions host
// POSTs to a custom handler for an HTTP trigger named "req".
type CustomHandlerRequest struct {
	Data struct {
		Req CustomHandlerHTTPTrigger `json:"req"`
	} `json:"Data"`
	Metadata map[string]json.RawMessage `json:"Metadata"`
}

// CustomHandlerHTTPTrigger is the host's representation of the inbound
// request inside the envelope.
type CustomHandlerHTTPTrigger struct {
	URL        string              `json:"Url"`
	Method     string              `json:"Method"`
	Query      map[string]string   `json:"Query"`
	Headers    map[string][]string `json:"Headers"`
	Params     map[string]string   `json:"Params"`
	Identities []json.RawMessage   `json:"Identities"`
	Body       string              `json:"Body"`
}

// CustomHandlerResponse is the envelope returned to the host; the HTTP
// output binding must be named "res".
type CustomHandlerResponse struct {
	Outputs     map[string]CustomHandlerHTTPOutput `json:"Outputs"`
	Logs        []string                           `json:"Logs,omitempty"`
	ReturnValue any                                `json:"ReturnValue,omitempty"`
}

type CustomHandlerHTTPOutput struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func customHandlerRequestConverter(ctx context.Context, event CustomHandlerRequest) (*http.Request, error) {
	trigger := event.Data.Req
	if trigger.Method == "" || trigger.URL == "" {
		return nil, fmt.Errorf("custom handler event: %w", ErrMalformedEvent)
	}

	url := trigger.URL
	if !strings.Contains(url, "?") {
		if q := buildQuery("", trigger.Query); q != "" {
			url += "?" + q
		}
	}

	req, err := http.NewRequestWithContext(ctx, trigger.Method, url, getBody(trigger.Body, false))
	if err != nil {
		return nil, err
	}

	for k, values := range trigger.Headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	req.RequestURI = req.URL.RequestURI()

	return req, nil
}

func customHandlerResponseInitializer(ctx context.Context) *ResponseWriterProxy {
	return NewResponseWriterProxy()
}

func customHandlerResponseFinalizer(ctx context.Context, w *ResponseWriterProxy) (CustomHandlerResponse, error) {
	res := CustomHandlerHTTPOutput{
		StatusCode: w.Status,
		Headers:    make(map[string]string),
		Body:       w.Body.String(),
	}

	for k, values := range w.Headers {
		if len(values) == 0 {
			res.Headers[k] = ""
		} else if len(values) == 1 {
			res.Headers[k] = values[0]
		} else {
			res.Headers[k] = strings.Join(values, ",")
		}
	}

	return CustomHandlerResponse{
		Outputs: map[string]CustomHandlerHTTPOutput{"res": res},
	}, nil
}

// NewAzureFunctionsHandler binds an AdapterFunc to the Azure Functions custom
// handler envelope.
func NewAzureFunctionsHandler(adapter AdapterFunc) func(context.Context, CustomHandlerRequest) (CustomHandlerResponse, error) {
	return NewHandler(customHandlerRequestConverter, customHandlerResponseInitializer, customHandlerResponseFinalizer, adapter)
}

// NewCustomHandlerHTTP exposes a custom handler envelope handler as the
// plain HTTP endpoint the functions host calls on the loopback listener.
// An adapter failure surfaces as a 500, which the host treats as a failed
// invocation.
func NewCustomHandlerHTTP(handler func(context.Context, CustomHandlerRequest) (CustomHandlerResponse, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var event CustomHandlerRequest
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := handler(r.Context(), event)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}
