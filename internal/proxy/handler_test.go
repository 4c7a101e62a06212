package proxy

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_HandleRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		event      events.APIGatewayProxyRequest
		wantMethod string
		wantURL    string
		wantBody   string
		wantHeader map[string]string
	}{
		{
			name:       "defaults to GET on root",
			event:      events.APIGatewayProxyRequest{},
			wantMethod: http.MethodGet,
			wantURL:    "/",
		},
		{
			name: "query parameters",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:            http.MethodGet,
				Path:                  "/api/v1/moon",
				QueryStringParameters: map[string]string{"date": "2024-01-01", "lat": "1"},
			},
			wantMethod: http.MethodGet,
			wantURL:    "/api/v1/moon?date=2024-01-01&lat=1",
		},
		{
			name: "multi value query wins",
			event: events.APIGatewayProxyRequest{
				Path:                            "/api/v1/tides",
				QueryStringParameters:           map[string]string{"lat": "2"},
				MultiValueQueryStringParameters: map[string][]string{"lat": {"1", "2"}},
			},
			wantMethod: http.MethodGet,
			wantURL:    "/api/v1/tides?lat=1&lat=2",
		},
		{
			name: "plain body and headers",
			event: events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodPut,
				Path:       "/api/v1/locations/current",
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"name":"x"}`,
				RequestContext: events.APIGatewayProxyRequestContext{
					RequestID: "req-1",
				},
			},
			wantMethod: http.MethodPut,
			wantURL:    "/api/v1/locations/current",
			wantBody:   `{"name":"x"}`,
			wantHeader: map[string]string{"Content-Type": "application/json", "X-Request-ID": "req-1"},
		},
		{
			name: "base64 body",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:      http.MethodPost,
				Path:            "/api/v1/locations/saved",
				Body:            base64.StdEncoding.EncodeToString([]byte(`{"name":"y"}`)),
				IsBase64Encoded: true,
			},
			wantMethod: http.MethodPost,
			wantURL:    "/api/v1/locations/saved",
			wantBody:   `{"name":"y"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotMethod, gotURL, gotBody string
			var gotHeader http.Header
			h := NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotURL = r.URL.RequestURI()
				gotHeader = r.Header
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				w.WriteHeader(http.StatusAccepted)
			}))

			resp, err := h.HandleRequest(context.Background(), tt.event)
			require.NoError(t, err)
			assert.Equal(t, http.StatusAccepted, resp.StatusCode)
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantBody, gotBody)
			for k, v := range tt.wantHeader {
				assert.Equal(t, v, gotHeader.Get(k), k)
			}
		})
	}
}

func TestHandler_CapturesResponse(t *testing.T) {
	t.Parallel()

	h := NewHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "MISS")
		_, _ = w.Write([]byte(`{"ok":`))
		_, _ = w.Write([]byte(`true}`))
	}))

	resp, err := h.HandleRequest(context.Background(), events.APIGatewayProxyRequest{Path: "/healthz"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "MISS", resp.Headers["X-Cache"])
}

func TestHandler_InvalidBase64(t *testing.T) {
	t.Parallel()

	called := false
	h := NewHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	resp, err := h.HandleRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, `"responseType":"error"`)
}
