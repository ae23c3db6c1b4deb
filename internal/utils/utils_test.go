package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "user-1", auth.RoleAdmin)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
		assert.Equal(t, auth.RoleAdmin, GetUserRoleFromContext(ctx))

		identity, ok := IdentityFromContext(ctx)
		assert.True(t, ok)
		assert.True(t, identity.IsAdmin())
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)

		_, ok = IdentityFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, auth.Role(""), GetUserRoleFromContext(context.Background()))
	})

	t.Run("Empty id is not an identity", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "", auth.RoleUser)
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, Response{Status: "Success", Data: map[string]string{"a": "b"}})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Success", body["status"])
	assert.NotContains(t, body, "message")
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "Book not found.", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book not found."}`, w.Body.String())
}

func TestIsUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid", "123e4567-e89b-12d3-a456-426614174000", true},
		{"Empty", "", false},
		{"Garbage", "not-a-uuid", false},
		{"Numeric", "123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUUID(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
}

func TestCanonicalUUID(t *testing.T) {
	const canonical = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"Canonical", canonical, canonical, true},
		{"Uppercase", "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", canonical, true},
		{"Dashless", "aaaaaaaabbbbccccddddeeeeeeeeeeee", canonical, true},
		{"Braced", "{aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee}", canonical, true},
		{"URN", "urn:uuid:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", canonical, true},
		{"Garbage", "not-a-uuid", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalUUID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
