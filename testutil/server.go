package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// RemoteFixture configures a fake remote server speaking the envelope
// REST surface (/ping, /contexts, /contexts/:id, /workspaces,
// /auth/login) under the /api base path.
type RemoteFixture struct {
	Token          string // expected bearer token; empty disables the check
	LoginToken     string // token handed out by /auth/login
	Contexts       []map[string]interface{}
	Workspaces     []map[string]interface{}
	FailContexts   bool // respond 500 to /contexts
	FailWorkspaces bool // respond 500 to /workspaces

	PingCount int32
}

// StartRemote starts an httptest server backed by the fixture. The
// server is shut down automatically when the test finishes.
func StartRemote(t *testing.T, fx *RemoteFixture) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fx.PingCount, 1)
		writeEnvelope(w, http.StatusOK, map[string]string{"message": "pong"})
	})
	mux.HandleFunc("/api/contexts", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r, fx.Token) {
			return
		}
		if fx.FailContexts {
			writeFailure(w, http.StatusInternalServerError, "context store unavailable")
			return
		}
		writeEnvelope(w, http.StatusOK, fx.Contexts)
	})
	mux.HandleFunc("/api/contexts/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r, fx.Token) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/contexts/")
		for _, c := range fx.Contexts {
			if c["id"] == id {
				writeEnvelope(w, http.StatusOK, c)
				return
			}
		}
		writeFailure(w, http.StatusNotFound, "context not found")
	})
	mux.HandleFunc("/api/workspaces", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r, fx.Token) {
			return
		}
		if fx.FailWorkspaces {
			writeFailure(w, http.StatusInternalServerError, "workspace store unavailable")
			return
		}
		writeEnvelope(w, http.StatusOK, fx.Workspaces)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeFailure(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		token := fx.LoginToken
		if token == "" {
			token = "test-token"
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"token": token})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func authorized(w http.ResponseWriter, r *http.Request, token string) bool {
	if token == "" {
		return true
	}
	if r.Header.Get("Authorization") != "Bearer "+token {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return false
	}
	return true
}

func writeEnvelope(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"payload": payload,
	})
}

func writeFailure(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}
