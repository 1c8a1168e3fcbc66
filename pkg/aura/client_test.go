package aura

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"aura-ops-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves both the token endpoint and the instance API from one
// httptest server, so the oauth2 transport exercises the real exchange.
func newTestServer(t *testing.T, apiHandler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var apiCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("client_id") != "test-client" || r.Form.Get("client_secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/instances", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		apiHandler(w, r)
	})
	mux.HandleFunc("/instances/", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		apiHandler(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &apiCalls
}

func newTestClient(server *httptest.Server, clientID, clientSecret string) *Client {
	provider := NewTokenProvider(clientID, clientSecret, server.URL+"/oauth/token")
	return NewClient(provider, server.URL, 2*time.Second)
}

func TestListInstances(t *testing.T) {
	var gotAuth string
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "db-1", "name": "fireflies", "status": "running", "memory": "8GB", "storage": "16GB", "region": "eu-west-1"},
				{"id": "db-2", "name": "dragonfly", "status": "paused"},
			},
		})
	})
	client := newTestClient(server, "test-client", "test-secret")

	instances, err := client.ListInstances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, instances, 2)
	assert.Equal(t, "db-1", instances[0].ID)
	assert.Equal(t, "fireflies", instances[0].Name)
	assert.Equal(t, "8GB", instances[0].Memory)
	assert.Equal(t, "paused", instances[1].Status)
}

func TestListInstancesRejectsItemWithoutID(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"name":"nameless","status":"running"}]}`))
	})
	client := newTestClient(server, "test-client", "test-secret")

	_, err := client.ListInstances(context.Background())

	var upstreamErr *apperror.UpstreamRequestError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Contains(t, upstreamErr.Detail, "missing id")
}

func TestGetInstance(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instances/db-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":"db-1","name":"fireflies","status":"running","memory":"8GB","cloud_provider":"gcp","tenant_id":"t-1"}}`))
	})
	client := newTestClient(server, "test-client", "test-secret")

	detail, err := client.GetInstance(context.Background(), "db-1")
	require.NoError(t, err)
	assert.Equal(t, "running", detail.Status)
	assert.Equal(t, "gcp", detail.CloudProvider)
	assert.Equal(t, "t-1", detail.TenantID)
}

func TestGetInstanceUpstreamFailure(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"message":"DB not found"}]}`))
	})
	client := newTestClient(server, "test-client", "test-secret")

	_, err := client.GetInstance(context.Background(), "ghost")

	var upstreamErr *apperror.UpstreamRequestError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Equal(t, "ghost", upstreamErr.InstanceID)
	assert.Contains(t, upstreamErr.Detail, "DB not found")
}

func TestGetInstanceMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"missing status", `{"data":{"id":"db-1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			client := newTestClient(server, "test-client", "test-secret")

			_, err := client.GetInstance(context.Background(), "db-1")

			var upstreamErr *apperror.UpstreamRequestError
			require.ErrorAs(t, err, &upstreamErr)
			assert.Contains(t, upstreamErr.Detail, "malformed")
		})
	}
}

func TestPerformAction(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/instances/db-1/pause", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"data":{"id":"db-1","name":"fireflies","status":"updating"}}`))
	})
	client := newTestClient(server, "test-client", "test-secret")

	result, err := client.PerformAction(context.Background(), "db-1", ActionPause)
	require.NoError(t, err)
	assert.Equal(t, "updating", result.Status)
}

func TestPerformActionRejectsInvalidActionBeforeNetwork(t *testing.T) {
	server, apiCalls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not reach the API")
	})
	client := newTestClient(server, "test-client", "test-secret")

	_, err := client.PerformAction(context.Background(), "db-1", Action("destroy"))

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int32(0), apiCalls.Load())
}

func TestDeleteInstance(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"data":{"id":"db-1","status":"deleting"}}`))
	})
	client := newTestClient(server, "test-client", "test-secret")

	assert.NoError(t, client.DeleteInstance(context.Background(), "db-1"))
}

func TestRejectedCredentialsSurfaceAsAuthError(t *testing.T) {
	server, apiCalls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not reach the API without a token")
	})
	client := newTestClient(server, "test-client", "wrong-secret")

	_, err := client.ListInstances(context.Background())

	var authErr *apperror.UpstreamAuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, int32(0), apiCalls.Load())
}

func TestTokenEagerExchange(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	provider := NewTokenProvider("test-client", "test-secret", server.URL+"/oauth/token")
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	bad := NewTokenProvider("test-client", "wrong-secret", server.URL+"/oauth/token")
	_, err = bad.Token(context.Background())
	var authErr *apperror.UpstreamAuthError
	require.ErrorAs(t, err, &authErr)
}
