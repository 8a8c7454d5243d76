package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	uid, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if uid != "user-123" {
		t.Errorf("uid = %q, want user-123", uid)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Fatal("want error for token signed with different secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Fatal("want error for malformed token")
	}
}

func TestMiddleware(t *testing.T) {
	mw := NewMiddleware(testSecret)

	var gotUID string
	handler := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		gotUID = uid
	})

	token, err := GenerateToken(testSecret, "user-42")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUID != "user-42" {
		t.Errorf("uid = %q, want user-42", gotUID)
	}
}

func TestMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	mw := NewMiddleware(testSecret)
	handler := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}
