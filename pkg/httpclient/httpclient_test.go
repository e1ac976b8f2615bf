package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"hello":"world"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	statusCode, body, err := SendRequest(context.Background(), server.Client(), HttpRequest{
		URL:    server.URL,
		Method: http.MethodPost,
		Body:   []byte(`{"hello":"world"}`),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, statusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestSendRequest_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, _, err := SendRequest(context.Background(), nil, HttpRequest{URL: url, Method: http.MethodGet})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
