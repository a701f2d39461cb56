package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]interface{}
		wantErr bool
	}{
		{"object", `{"event":"lead_captured","n":2}`, map[string]interface{}{"event": "lead_captured", "n": 2.0}, false},
		{"empty", ``, nil, true},
		{"null", `null`, nil, true},
		{"array", `[1,2]`, nil, true},
		{"broken", `{"a":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := DecodeObject(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeObject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))
	assert.True(t, errors.Is(err, ErrEmptyBody))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]bool{"success": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRemarshal(t *testing.T) {
	var out struct {
		Name  string   `json:"name"`
		Items []string `json:"items"`
	}
	require.NoError(t, Remarshal(map[string]interface{}{"name": "x", "items": []interface{}{"a"}}, &out))
	assert.Equal(t, "x", out.Name)
	assert.Equal(t, []string{"a"}, out.Items)
}
