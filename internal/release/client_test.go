package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewClient_ValidatesURL verifies that an empty endpoint is rejected.
func TestNewClient_ValidatesURL(t *testing.T) {
	t.Parallel()

	c, err := NewClient("")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClientFetch decodes a valid metadata document from a test server.
func TestClientFetch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"currentRelease": "1.2.3",
			"releases": [
				{"updateTo": {"url": "https://cdn.local/kiro-1.2.3.tar.gz"}}
			]
		}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	metadata, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.2.3", metadata.CurrentRelease)
	require.Len(t, metadata.Releases, 1)
	require.Equal(t, "https://cdn.local/kiro-1.2.3.tar.gz", metadata.Releases[0].UpdateTo.URL)
}

// TestClientFetch_BadStatus verifies that non-OK responses surface as errors.
func TestClientFetch_BadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())
	require.ErrorIs(t, err, errBadHTTPStatus)
}

// TestClientFetch_InvalidJSON verifies that a malformed document surfaces as an error.
func TestClientFetch_InvalidJSON(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())
	require.Error(t, err)
}
