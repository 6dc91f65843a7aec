package view

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	vambrace "github.com/vambrace/vambrace/internal"
)

// Slugged is an object that carries a canonical URL slug.
type Slugged interface {
	CanonicalSlug() string
}

// ObjectFinder loads the object of a detail view by its id route parameter.
type ObjectFinder func(ctx context.Context, id string) (Slugged, error)

// CanonicalSlug enforces the canonical slug in detail URLs. The behavior loads
// the object by the id route parameter and, when the slug route parameter does
// not match the object's canonical slug, answers a permanent redirect to the
// canonical path instead of serving the wrapped view.
func CanonicalSlug(find ObjectFinder, idParam, slugParam string) (Behavior, error) {
	if find == nil {
		return nil, fmt.Errorf("%w: canonical slug object finder is nil", vambrace.ErrNotConfigured)
	}
	if idParam == "" || slugParam == "" {
		return nil, fmt.Errorf("%w: canonical slug route parameter names are empty", vambrace.ErrNotConfigured)
	}
	return func(next View) View {
		return Func(func(r *http.Request) (vambrace.Response, error) {
			obj, err := find(r.Context(), chi.URLParam(r, idParam))
			if err != nil {
				return nil, err
			}
			slug := chi.URLParam(r, slugParam)
			if canonical := obj.CanonicalSlug(); canonical != slug {
				return vambrace.NewRedirect(canonicalPath(r, slugParam, canonical), true), nil
			}
			return next.Serve(r)
		})
	}, nil
}

// canonicalPath rebuilds the matched route pattern, substituting the canonical
// slug for the slug parameter and matched values for all others.
func canonicalPath(r *http.Request, slugParam, canonical string) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	path := rctx.RoutePattern()
	for i, key := range rctx.URLParams.Keys {
		val := rctx.URLParams.Values[i]
		if key == slugParam {
			val = canonical
		}
		path = strings.ReplaceAll(path, "{"+key+"}", val)
	}
	return path
}
