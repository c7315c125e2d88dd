package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/ghuser/retailseed/pkg/logger"
)

// The cookie store shares the sessions.Store contract with RedisStore.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func cookiesFrom(w *httptest.ResponseRecorder, r *http.Request) *http.Request {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRequireOperator_ValidSession(t *testing.T) {
	store := newTestStore()

	w1 := httptest.NewRecorder()
	if err := StartOperatorSession(store, w1, httptest.NewRequest(http.MethodPost, "/api/sessions", nil), "ops"); err != nil {
		t.Fatalf("start session: %v", err)
	}

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = OperatorFromCtx(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})

	r := cookiesFrom(w1, httptest.NewRequest(http.MethodPost, "/api/seed-runs", nil))
	w := httptest.NewRecorder()
	RequireOperator(store, logger.Discard())(next).ServeHTTP(w, r)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	if captured != "ops" {
		t.Fatalf("expected operator ops in context, got %q", captured)
	}
}

func TestRequireOperator_MissingCookie(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})

	w := httptest.NewRecorder()
	RequireOperator(newTestStore(), logger.Discard())(next).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/seed-runs", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireOperator_SessionWithoutOperator(t *testing.T) {
	store := newTestStore()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})

	writeReq := httptest.NewRequest(http.MethodPost, "/", nil)
	w1 := httptest.NewRecorder()
	session, _ := store.Get(writeReq, SessionName)
	_ = session.Save(writeReq, w1)

	w := httptest.NewRecorder()
	RequireOperator(store, logger.Discard())(next).
		ServeHTTP(w, cookiesFrom(w1, httptest.NewRequest(http.MethodPost, "/api/seed-runs", nil)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireOperator_AfterLogout(t *testing.T) {
	store := newTestStore()

	w1 := httptest.NewRecorder()
	_ = StartOperatorSession(store, w1, httptest.NewRequest(http.MethodPost, "/", nil), "ops")

	w2 := httptest.NewRecorder()
	if err := EndOperatorSession(store, w2, cookiesFrom(w1, httptest.NewRequest(http.MethodDelete, "/", nil))); err != nil {
		t.Fatalf("end session: %v", err)
	}

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})
	w := httptest.NewRecorder()
	RequireOperator(store, logger.Discard())(next).
		ServeHTTP(w, cookiesFrom(w2, httptest.NewRequest(http.MethodPost, "/api/seed-runs", nil)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestTokenMatches(t *testing.T) {
	tests := []struct {
		presented, expected string
		want                bool
	}{
		{"secret", "secret", true},
		{"secret", "Secret", false},
		{"", "secret", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := TokenMatches(tt.presented, tt.expected); got != tt.want {
			t.Errorf("TokenMatches(%q, %q) = %v, want %v", tt.presented, tt.expected, got, tt.want)
		}
	}
}
