package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client against handler with the given config fields
// applied on top of the server URL.
func newTestClient(t *testing.T, handler http.Handler, configure func(*zefix.Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &zefix.Config{BaseURL: server.URL}
	if configure != nil {
		configure(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// writeJSON writes body as a JSON response with status.
func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	err := json.NewEncoder(writer).Encode(body)
	assert.NoError(t, err)
}
