package server

import (
	"log/slog"
	"net/http"

	"github.com/vambrace/vambrace/internal/viewcache"
)

// Pre-allocated X-Cache header values (see respond.go:jsonCT).
var (
	cacheHit  = []string{"HIT"}
	cacheMiss = []string{"MISS"}
)

// serveFromCache answers GET requests straight from the response cache. The
// lookup key is the raw request path -- the same key the cache decorator
// writes, so query-string variants of a path share one entry.
func (s *server) serveFromCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path
		data, ok, err := s.deps.Cache.Get(r.Context(), key)
		switch {
		case err != nil:
			// A failing cache never blocks the response; render fresh.
			slog.LogAttrs(r.Context(), slog.LevelWarn, "cache get failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		case ok:
			resp, derr := viewcache.Decode(data)
			if derr == nil {
				if s.deps.Metrics != nil {
					s.deps.Metrics.CacheHits.Inc()
				}
				w.Header()["X-Cache"] = cacheHit
				if werr := resp.Write(w); werr != nil {
					slog.LogAttrs(r.Context(), slog.LevelError, "write cached response",
						slog.String("key", key),
						slog.String("error", werr.Error()),
					)
				}
				return
			}
			// Undecodable entry: drop it and render fresh.
			slog.LogAttrs(r.Context(), slog.LevelWarn, "dropping bad cache entry",
				slog.String("key", key),
				slog.String("error", derr.Error()),
			)
			if delErr := s.deps.Cache.Delete(r.Context(), key); delErr != nil {
				slog.LogAttrs(r.Context(), slog.LevelWarn, "cache delete failed",
					slog.String("key", key),
					slog.String("error", delErr.Error()),
				)
			}
		}

		if s.deps.Metrics != nil {
			s.deps.Metrics.CacheMisses.Inc()
		}
		w.Header()["X-Cache"] = cacheMiss
		next.ServeHTTP(w, r)
	})
}
