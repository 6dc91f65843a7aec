package server

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	vambrace "github.com/vambrace/vambrace/internal"
	"github.com/vambrace/vambrace/internal/view"
	"github.com/vambrace/vambrace/internal/viewcache"
)

var detailTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.page.Title}}</title></head>
<body>
{{if .headline}}<h1>{{.headline}}</h1>{{end}}
<article>
<h2>{{.page.Title}}</h2>
<p>{{.page.Body}}</p>
</article>
</body>
</html>
`))

var listTmpl = template.Must(template.New("pages").Parse(`<!DOCTYPE html>
<html>
<head><title>Pages</title></head>
<body>
{{if .headline}}<h1>{{.headline}}</h1>{{end}}
<ul>
{{range .pages}}<li><a href="/pages/{{.ID}}/{{.Slug}}">{{.Title}}</a></li>
{{end}}</ul>
<p>{{.total}} pages</p>
</body>
</html>
`))

// pageViews bundles the composed page views.
type pageViews struct {
	list   view.View
	detail view.View
}

// buildViews composes the page and echo views from the configured behaviors.
// Constructor errors surface here, before the server starts listening.
func (s *server) buildViews() (pageViews, view.View, error) {
	var shared []view.Behavior
	if h := s.deps.Views.Headline; h != "" {
		b, err := view.Headline(h)
		if err != nil {
			return pageViews{}, nil, err
		}
		shared = append(shared, b)
	}
	if sc := s.deps.Views.StaticContext; sc != "" {
		b, err := view.StaticContextJSON(sc)
		if err != nil {
			return pageViews{}, nil, err
		}
		shared = append(shared, b)
	}

	slugCheck, err := view.CanonicalSlug(s.findPage, "id", "slug")
	if err != nil {
		return pageViews{}, nil, err
	}

	var cached view.Behavior
	if s.deps.Cache != nil {
		rc, err := viewcache.New(s.deps.Cache, s.deps.Views.CacheTimeout, s.deps.Metrics)
		if err != nil {
			return pageViews{}, nil, err
		}
		cached = rc.Behavior()
	}

	detailChain := append([]view.Behavior{slugCheck}, shared...)
	listChain := append([]view.Behavior{}, shared...)
	if cached != nil {
		detailChain = append(detailChain, cached)
		listChain = append(listChain, cached)
	}

	echo, err := view.AllVerbs(s.echo)
	if err != nil {
		return pageViews{}, nil, err
	}

	return pageViews{
		list:   view.Compose(view.Func(s.pageList), listChain...),
		detail: view.Compose(view.Func(s.pageDetail), detailChain...),
	}, echo, nil
}

// findPage loads a page for the canonical-slug check. Concurrent lookups of
// the same id are collapsed so a hot detail page hits the database at most
// once at a time.
func (s *server) findPage(ctx context.Context, id string) (view.Slugged, error) {
	v, err, _ := s.sf.Do("page:"+id, func() (any, error) {
		return s.deps.Store.GetPage(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*vambrace.Page), nil
}

// pageDetail renders a single page.
func (s *server) pageDetail(r *http.Request) (vambrace.Response, error) {
	p, err := s.deps.Store.GetPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return vambrace.NewTemplate(detailTmpl, vambrace.ContextData{"page": p}), nil
}

// pageList renders the page index.
func (s *server) pageList(r *http.Request) (vambrace.Response, error) {
	offset, limit := parsePagination(r)
	pages, err := s.deps.Store.ListPages(r.Context(), offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.deps.Store.CountPages(r.Context())
	if err != nil {
		return nil, err
	}
	return vambrace.NewTemplate(listTmpl, vambrace.ContextData{
		"pages": pages,
		"total": total,
	}), nil
}

// echo answers every HTTP verb with the request's method and path.
func (s *server) echo(r *http.Request) (vambrace.Response, error) {
	body, err := json.Marshal(map[string]string{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": vambrace.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		return nil, err
	}
	return vambrace.NewContent(http.StatusOK, "application/json", body), nil
}
