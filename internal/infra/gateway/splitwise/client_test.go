package splitwise_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkoff/moneymap/internal/infra/gateway/splitwise"
	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func TestClient_BearerAuthHeader(t *testing.T) {
	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":42}}`))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	id, err := client.GetCurrentUser(context.Background(), "secret-key")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "Bearer secret-key", receivedAuth)
}

func TestClient_GetCurrentUser_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{}}`))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetCurrentUser(context.Background(), "key")
	require.Error(t, err)
	assert.True(t, importer.IsUpstreamError(err))
}

func TestClient_GetExpenses_QueryParams(t *testing.T) {
	var receivedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"expenses":[]}`))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetExpenses(context.Background(), "key", 100, 300)
	require.NoError(t, err)
	assert.Contains(t, receivedQuery, "limit=100")
	assert.Contains(t, receivedQuery, "offset=300")
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetExpenses(context.Background(), "bad-key", 100, 0)
	require.Error(t, err)
	assert.True(t, importer.IsAuthError(err))
	assert.False(t, importer.IsUpstreamError(err))
}

func TestClient_UpstreamError_MessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":{"message":"splitwise is down"}}`))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetExpenses(context.Background(), "key", 100, 0)
	require.Error(t, err)

	var ue *importer.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
	assert.Equal(t, "splitwise is down", ue.Message)
}

func TestClient_UpstreamError_RawBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetExpenses(context.Background(), "key", 100, 0)
	require.Error(t, err)

	var ue *importer.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "gateway timeout")
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := splitwise.NewClient(server.URL, testLogger())

	_, err := client.GetExpenses(context.Background(), "key", 100, 0)
	require.Error(t, err)
	assert.True(t, importer.IsTransportError(err))
}

func TestClient_GetExpenses_LooseFieldTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"expenses":[
			{
				"id": 12345,
				"description": "Groceries",
				"cost": "1,234.50",
				"currency_code": "EUR",
				"date": "2024-01-15T10:00:00Z",
				"category": {"name": "Food"},
				"users": [
					{"user": {"id": 42}, "owed_share": "10.00", "paid_share": 20.5}
				]
			},
			{
				"id": "67890",
				"description": "Taxi",
				"cost": 15,
				"category": "Transport",
				"date": "2024-01-16"
			}
		]}`))
	}))
	defer server.Close()

	client := splitwise.NewClient(server.URL, testLogger())

	expenses, err := client.GetExpenses(context.Background(), "key", 100, 0)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	first := expenses[0]
	assert.Equal(t, "12345", string(first.ID))
	assert.Equal(t, "1,234.50", string(first.Cost))
	assert.Equal(t, "Food", string(first.Category))
	require.Len(t, first.Users, 1)
	assert.Equal(t, int64(42), first.Users[0].User.ID)
	assert.Equal(t, "20.5", string(first.Users[0].PaidShare))

	second := expenses[1]
	assert.Equal(t, "67890", string(second.ID))
	assert.Equal(t, "15", string(second.Cost))
	assert.Equal(t, "Transport", string(second.Category))
}
