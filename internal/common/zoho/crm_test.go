package zoho

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRMClient_CreateLead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v2/Leads", r.URL.Path)
		assert.Equal(t, "Zoho-oauthtoken tok", r.Header.Get("Authorization"))

		var body struct {
			Data []Lead `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "an@example.com", body.Data[0].Email)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":[{"code":"SUCCESS","status":"success","details":{"id":"4150868000001"}}]}`))
	}))
	defer server.Close()

	c := NewCRMClient(server.URL+"/crm/v2", "tok", time.Second)
	id, err := c.CreateLead(context.Background(), &Lead{LastName: "An", Email: "an@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "4150868000001", id)
}

func TestCRMClient_CreateLeadFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `oops`, "failed to create lead"},
		{"empty data", http.StatusCreated, `{"data":[]}`, "no data in response"},
		{"duplicate", http.StatusCreated, `{"data":[{"status":"error","message":"duplicate data"}]}`, "duplicate data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewCRMClient(server.URL, "tok", time.Second)
			_, err := c.CreateLead(context.Background(), &Lead{LastName: "An", Email: "an@example.com"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCRMClient_SearchAndUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("email") == "known@example.com":
			_, _ = w.Write([]byte(`{"data":[{"id":"77","Last_Name":"Known","Email":"known@example.com"}]}`))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPut && r.URL.Path == "/Leads/77":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	c := NewCRMClient(server.URL, "tok", time.Second)
	ctx := context.Background()

	leads, err := c.SearchLeads(ctx, "known@example.com")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "77", leads[0].ID)

	none, err := c.SearchLeads(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, c.UpdateLead(ctx, "77", &Lead{LastName: "Known", Email: "known@example.com", Description: "again"}))
	assert.Error(t, c.UpdateLead(ctx, "78", &Lead{LastName: "X"}))
}
