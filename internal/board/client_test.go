package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBoardClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, zap.NewNop()), server
}

func TestClient_ListOrders(t *testing.T) {
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Order{
			{ID: 2, CustomerName: "Ana", Status: "pending", Total: 30},
			{ID: 1, CustomerName: "Bia", Status: "ready", Total: 25},
		})
	}))

	orders, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, "Ana", orders[0].CustomerName)
}

func TestClient_AdvanceSendsNextStatus(t *testing.T) {
	var gotPath, gotStatus string
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status"]
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	err := client.Advance(context.Background(), Order{ID: 7, Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/7/status", gotPath)
	assert.Equal(t, "preparing", gotStatus)
}

func TestClient_AdvanceStopsAtDelivered(t *testing.T) {
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	require.NoError(t, client.Advance(context.Background(), Order{ID: 7, Status: "delivered"}))
	require.NoError(t, client.Advance(context.Background(), Order{ID: 7, Status: "archived"}))
}

func TestClient_RegressSendsPrevStatus(t *testing.T) {
	var gotStatus string
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status"]
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	require.NoError(t, client.Regress(context.Background(), Order{ID: 7, Status: "ready"}))
	assert.Equal(t, "preparing", gotStatus)
}

func TestClient_RegressNoOpAtPending(t *testing.T) {
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	require.NoError(t, client.Regress(context.Background(), Order{ID: 7, Status: "pending"}))
}

func TestClient_ArchiveFromAnyState(t *testing.T) {
	var gotStatus string
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status"]
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	require.NoError(t, client.Archive(context.Background(), Order{ID: 3, Status: "pending"}))
	assert.Equal(t, "archived", gotStatus)
}

func TestClient_Remove(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))

	require.NoError(t, client.Remove(context.Background(), 11))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/orders/11", gotPath)
}

func TestClient_SuccessFalseIsAnErrorEvenOn200(t *testing.T) {
	client, _ := newBoardClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "invalid status transition",
		})
	}))

	err := client.Archive(context.Background(), Order{ID: 3, Status: "pending"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
}

func TestClient_ServerUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())

	_, err := client.ListOrders(context.Background())
	require.Error(t, err)

	err = client.Remove(context.Background(), 1)
	require.Error(t, err)
}
