package server

import (
	"net/http"

	"github.com/vambrace/vambrace/internal/cache"
)

// Pre-allocated response body and header value slice (see respond.go:jsonCT).
var (
	okBody  = []byte("ok")
	plainCT = []string{"text/plain"}
)

// readiness is the /readyz payload. CacheStores lists the registered cache
// store names so a deployment can confirm which backends came up.
type readiness struct {
	Status      string   `json:"status"`
	Error       string   `json:"error,omitempty"`
	CacheStores []string `json:"cache_stores,omitempty"`
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header()["Content-Type"] = plainCT
	w.WriteHeader(http.StatusOK)
	w.Write(okBody)
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.deps.ReadyCheck != nil {
		if err := s.deps.ReadyCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readiness{
				Status: "unready",
				Error:  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, readiness{
		Status:      "ready",
		CacheStores: cache.Names(),
	})
}
