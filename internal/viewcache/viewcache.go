// Package viewcache persists rendered responses into a cache store. The
// decorator is a pass-through: responses are returned unchanged, the cache
// write is a best-effort side effect and never part of the response contract.
package viewcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	vambrace "github.com/vambrace/vambrace/internal"
	"github.com/vambrace/vambrace/internal/cache"
	"github.com/vambrace/vambrace/internal/telemetry"
	"github.com/vambrace/vambrace/internal/view"
)

// ResponseCache stores rendered responses under their request path.
type ResponseCache struct {
	store   cache.Store
	timeout TimeoutSpec
	metrics *telemetry.Metrics
}

// New creates a response-cache decorator writing to store. The timeout spec
// is validated here so a misconfigured view fails at startup rather than on
// first request. metrics may be nil.
func New(store cache.Store, timeout TimeoutSpec, metrics *telemetry.Metrics) (*ResponseCache, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: response cache store is nil", vambrace.ErrNotConfigured)
	}
	if timeout == "" {
		timeout = DefaultTimeout
	}
	if _, err := timeout.Seconds(); err != nil {
		return nil, err
	}
	return &ResponseCache{store: store, timeout: timeout, metrics: metrics}, nil
}

// Behavior returns the decorator as a view behavior.
func (c *ResponseCache) Behavior() view.Behavior {
	return func(next view.View) view.View {
		return view.Func(func(r *http.Request) (vambrace.Response, error) {
			resp, err := next.Serve(r)
			if err != nil {
				return nil, err
			}
			return c.CacheResponse(r.Context(), resp, r.URL.Path)
		})
	}
}

// CacheResponse arranges for resp to be stored under the raw request path and
// returns it unchanged. Streaming and non-200 responses are skipped. A
// response still pending render is stored from a post-render callback, so the
// finalized body is what gets cached; a fully rendered response is stored
// before returning. Store failures on the immediate path propagate to the
// caller.
//
// The key is the request path verbatim: the query string and the method are
// deliberately ignored, so distinct query variants of a path share one entry.
func (c *ResponseCache) CacheResponse(ctx context.Context, resp vambrace.Response, path string) (vambrace.Response, error) {
	if resp.Streaming() || resp.StatusCode() != http.StatusOK {
		if c.metrics != nil {
			c.metrics.CacheSkips.Inc()
		}
		return resp, nil
	}

	ttl, err := c.timeout.TTL()
	if err != nil {
		return nil, err
	}

	if d, ok := resp.(vambrace.Deferred); ok && !d.Rendered() {
		d.OnPostRender(func(final vambrace.Response) {
			// The rendering pipeline offers no error path for callbacks; a
			// failed deferred write is logged and the response still served.
			if err := c.write(ctx, path, final, ttl); err != nil {
				slog.LogAttrs(ctx, slog.LevelError, "deferred cache write failed",
					slog.String("key", path),
					slog.String("error", err.Error()),
				)
				return
			}
			c.countWrite("deferred")
		})
		return resp, nil
	}

	if err := c.write(ctx, path, resp, ttl); err != nil {
		return nil, err
	}
	c.countWrite("immediate")
	return resp, nil
}

func (c *ResponseCache) write(ctx context.Context, key string, resp vambrace.Response, ttl time.Duration) error {
	data, err := Encode(resp)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, data, ttl)
}

func (c *ResponseCache) countWrite(mode string) {
	if c.metrics != nil {
		c.metrics.CacheWrites.WithLabelValues(mode).Inc()
	}
}

// cachedResponse is the stored wire form of a response.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Encode serializes a rendered response for storage. The response must carry
// its complete body.
func Encode(resp vambrace.Response) ([]byte, error) {
	b, ok := resp.(vambrace.Bodied)
	if !ok {
		return nil, fmt.Errorf("response of type %T has no retained body to cache", resp)
	}
	return json.Marshal(cachedResponse{
		Status: resp.StatusCode(),
		Header: resp.Header(),
		Body:   b.Body(),
	})
}

// Decode reconstructs a stored response.
func Decode(data []byte) (*vambrace.ContentResponse, error) {
	var cr cachedResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("decode cached response: %w", err)
	}
	resp := vambrace.NewContent(cr.Status, "", cr.Body)
	h := resp.Header()
	for k, vv := range cr.Header {
		h[k] = vv
	}
	return resp, nil
}
