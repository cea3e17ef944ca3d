package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login_SetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["identity"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Logged in","data":{"token":"jwt-abc"}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL).Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", client.token)
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Accounts","data":{"count":1,"results":[{"name":"cash","balance":12.5,"is_active":true}],"total_balance":12.5}}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).WithToken("jwt-abc").ListAccounts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "cash", page.Results[0].Name)
	assert.InDelta(t, 12.5, page.TotalBalance, 0.001)
}

func TestClient_DecodesProblemDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"title":"Failed to create transfer","status":422,"detail":"insufficient funds"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).CreateTransfer(context.Background(), uuid.New(), uuid.New(), 100)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "insufficient funds", apiErr.Detail)
	assert.Contains(t, apiErr.Error(), "insufficient funds")
}

func TestClient_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "expense", r.URL.Query().Get("type"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Categories","data":{"count":0,"results":[]}}`))
	}))
	defer srv.Close()

	cats, err := New(srv.URL).WithToken("t").ListCategories(context.Background(), "expense", 2)
	require.NoError(t, err)
	assert.Empty(t, cats)
}
