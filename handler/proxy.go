package handler

import (
	"bytes"
	"io"
	"net/http"
)

// ResponseWriterProxy buffers everything the wrapped application writes so
// the finalizers can emit it in one piece. Streaming output is intentionally
// not supported: the body is held in full until the invocation completes,
// matching the buffered shape of the host response contracts.
type ResponseWriterProxy struct {
	Status  int
	Headers http.Header
	Body    bytes.Buffer

	headersWritten bool
}

func NewResponseWriterProxy() *ResponseWriterProxy {
	return &ResponseWriterProxy{
		Status:  http.StatusOK,
		Headers: make(http.Header),
	}
}

func (w *ResponseWriterProxy) Header() http.Header {
	return w.Headers
}

func (w *ResponseWriterProxy) Write(p []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.Body.Write(p)
}

// WriteHeader records the status code of the first call; later calls are
// ignored, as with net/http.
func (w *ResponseWriterProxy) WriteHeader(statusCode int) {
	if !w.headersWritten {
		w.headersWritten = true
		w.Status = statusCode
	}
}

// Result returns the buffered response as an *http.Response. The headers are
// cloned, so the result stays valid if the proxy is written to afterwards.
func (w *ResponseWriterProxy) Result() *http.Response {
	return &http.Response{
		Status:        http.StatusText(w.Status),
		StatusCode:    w.Status,
		Header:        w.Headers.Clone(),
		Body:          io.NopCloser(bytes.NewReader(w.Body.Bytes())),
		ContentLength: int64(w.Body.Len()),
	}
}
