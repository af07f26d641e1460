package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString(t *testing.T) {
	type body struct {
		Notes OptionalString `json:"notes"`
	}

	tests := []struct {
		name        string
		json        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent", json: `{}`, wantPresent: false},
		{name: "null", json: `{"notes": null}`, wantPresent: true},
		{name: "empty", json: `{"notes": ""}`, wantPresent: true, wantValue: ptr("")},
		{name: "value", json: `{"notes": "second shooter"}`, wantPresent: true, wantValue: ptr("second shooter")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))
			assert.Equal(t, tt.wantPresent, b.Notes.Present)
			assert.Equal(t, tt.wantValue, b.Notes.Value)
		})
	}

	var b body
	assert.Error(t, json.Unmarshal([]byte(`{"notes": 42}`), &b))
}

func TestParseJSON(t *testing.T) {
	type dest struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name": "Ana & Luis"}`},
		{name: "empty body", body: ``, wantErr: "empty"},
		{name: "unknown field", body: `{"nmae": "x"}`, wantErr: "unknown field"},
		{name: "trailing object", body: `{"name": "a"} {"name": "b"}`, wantErr: "single object"},
		{name: "malformed", body: `{"name":`, wantErr: "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var d dest
			err := ParseJSON(w, r, &d)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ana & Luis", d.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRespondErrorWithExtras(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorWithExtras(w, http.StatusBadRequest, "create folder failed", map[string]any{
		"segment": "Mendoza",
		"status":  999,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Mendoza", body["segment"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.EqualValues(t, http.StatusBadRequest, body["status"], "extras must not override standard members")
	assert.Equal(t, "create folder failed", body["detail"])
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUserIDContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(r))

	r = WithUserID(r, "user-1")
	assert.Equal(t, "user-1", GetUserID(r))
}

func ptr(s string) *string { return &s }
