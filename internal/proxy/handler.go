// Package proxy adapts API Gateway proxy events to a plain http.Handler
package proxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/lunartide/internal/api"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	next http.Handler
}

func NewHandler(next http.Handler) *Handler {
	return &Handler{next: next}
}

// HandleRequest serves event through the wrapped handler and returns the captured response
func (h *Handler) HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := newRequest(ctx, event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create request")
		return api.Error("Failed to create request", http.StatusBadRequest)
	}

	w := &responseWriter{
		headers: make(http.Header),
		body:    &bytes.Buffer{},
		code:    http.StatusOK,
	}

	h.next.ServeHTTP(w, req)

	headers := make(map[string]string, len(w.headers))
	for key := range w.headers {
		headers[key] = w.headers.Get(key)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: w.code,
		Headers:    headers,
		Body:       w.body.String(),
	}, nil
}

func newRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}
	path := event.Path
	if path == "" {
		path = "/"
	}

	query := url.Values{}
	for key, values := range event.MultiValueQueryStringParameters {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	for key, value := range event.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, value)
		}
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	target := (&url.URL{Scheme: "https", Host: "localhost", Path: path, RawQuery: query.Encode()}).String()
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, value := range event.Headers {
		req.Header.Set(key, value)
	}
	for key, values := range event.MultiValueHeaders {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = strings.TrimSpace(host)
	}
	if id := event.RequestContext.RequestID; id != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", id)
	}

	return req, nil
}

// responseWriter implements http.ResponseWriter
type responseWriter struct {
	headers http.Header
	body    *bytes.Buffer
	code    int
}

func (w *responseWriter) Header() http.Header {
	return w.headers
}

func (w *responseWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.code = statusCode
}
