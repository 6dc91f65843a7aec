package server

import (
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// maxAdminBody is the maximum allowed admin request body size (1 MB).
const maxAdminBody = 1 << 20

// handleCachePurge removes every entry from the response cache.
func (s *server) handleCachePurge(w http.ResponseWriter, r *http.Request) {
	if s.deps.Cache == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("no cache configured"))
		return
	}
	if err := s.deps.Cache.Purge(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("purge failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

// handleCacheInvalidate removes a single entry. The key is the raw request
// path the entry was stored under, passed as {"key": "/pages/..."}.
func (s *server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if s.deps.Cache == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("no cache configured"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}
	key := gjson.GetBytes(body, "key").String()
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("missing key"))
		return
	}
	if err := s.deps.Cache.Delete(r.Context(), key); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("invalidate failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated", "key": key})
}
