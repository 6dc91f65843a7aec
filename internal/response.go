package vambrace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

// Response is the outcome of serving a view.
type Response interface {
	// StatusCode returns the HTTP status the response will be written with.
	StatusCode() int
	// Streaming reports whether the body is produced incrementally. Streaming
	// responses have no retained body and are never cached.
	Streaming() bool
	// Header returns the response headers, mutable until Write.
	Header() http.Header
	// Write sends the response to w.
	Write(w http.ResponseWriter) error
}

// Deferred is a response whose body is produced after the view returns
// (staged rendering). Post-render callbacks observe the finalized response.
type Deferred interface {
	Response
	// Rendered reports whether Render has completed.
	Rendered() bool
	// Render produces the final body and fires post-render callbacks.
	Render(ctx context.Context) error
	// OnPostRender registers fn to run once rendering completes. If the
	// response is already rendered, fn runs immediately.
	OnPostRender(fn func(Response))
}

// ContextCarrier is a response that exposes a mutable render context.
// Behaviors use it to add values before rendering.
type ContextCarrier interface {
	ContextData() ContextData
}

// Bodied is a response whose complete body bytes are available.
type Bodied interface {
	Body() []byte
}

// ErrNotRendered reports a deferred response written before Render.
var ErrNotRendered = errors.New("response not rendered")

func writeHead(w http.ResponseWriter, h http.Header, status int) {
	dst := w.Header()
	for k, vv := range h {
		dst[k] = vv
	}
	w.WriteHeader(status)
}

// --- ContentResponse ---

// ContentResponse is a fully rendered response.
type ContentResponse struct {
	status int
	header http.Header
	body   []byte
}

// NewContent creates a fully rendered response with the given status and body.
func NewContent(status int, contentType string, body []byte) *ContentResponse {
	h := http.Header{}
	if contentType != "" {
		h["Content-Type"] = []string{contentType}
	}
	return &ContentResponse{status: status, header: h, body: body}
}

func (r *ContentResponse) StatusCode() int     { return r.status }
func (r *ContentResponse) Streaming() bool     { return false }
func (r *ContentResponse) Header() http.Header { return r.header }
func (r *ContentResponse) Body() []byte        { return r.body }

func (r *ContentResponse) Write(w http.ResponseWriter) error {
	writeHead(w, r.header, r.status)
	_, err := w.Write(r.body)
	return err
}

// --- RedirectResponse ---

// RedirectResponse answers a redirect to Location.
type RedirectResponse struct {
	status   int
	header   http.Header
	location string
}

// NewRedirect creates a redirect response. permanent selects 301 over 302.
func NewRedirect(location string, permanent bool) *RedirectResponse {
	status := http.StatusFound
	if permanent {
		status = http.StatusMovedPermanently
	}
	return &RedirectResponse{
		status:   status,
		header:   http.Header{"Location": []string{location}},
		location: location,
	}
}

func (r *RedirectResponse) StatusCode() int     { return r.status }
func (r *RedirectResponse) Streaming() bool     { return false }
func (r *RedirectResponse) Header() http.Header { return r.header }
func (r *RedirectResponse) Location() string    { return r.location }

func (r *RedirectResponse) Write(w http.ResponseWriter) error {
	writeHead(w, r.header, r.status)
	return nil
}

// --- StreamResponse ---

// StreamResponse copies its body from a reader at write time. The body is
// never retained, so stream responses are exempt from caching.
type StreamResponse struct {
	status int
	header http.Header
	src    io.Reader
}

// NewStream creates a streaming response reading from src.
func NewStream(status int, contentType string, src io.Reader) *StreamResponse {
	h := http.Header{}
	if contentType != "" {
		h["Content-Type"] = []string{contentType}
	}
	return &StreamResponse{status: status, header: h, src: src}
}

func (r *StreamResponse) StatusCode() int     { return r.status }
func (r *StreamResponse) Streaming() bool     { return true }
func (r *StreamResponse) Header() http.Header { return r.header }

func (r *StreamResponse) Write(w http.ResponseWriter) error {
	writeHead(w, r.header, r.status)
	_, err := io.Copy(w, r.src)
	return err
}

// --- TemplateResponse ---

// htmlCT is shared across template responses; Write copies headers by value
// slice, so the canonical form must be set up front.
var htmlCT = []string{"text/html; charset=utf-8"}

// TemplateResponse renders an html/template against a mutable context. The
// body does not exist until Render is called, which lets behaviors adjust the
// context and register post-render callbacks in the meantime.
type TemplateResponse struct {
	status    int
	header    http.Header
	tmpl      *template.Template
	data      ContextData
	body      []byte
	rendered  bool
	callbacks []func(Response)
}

// NewTemplate creates a deferred response for tmpl with the given initial
// context. A nil context starts empty.
func NewTemplate(tmpl *template.Template, data ContextData) *TemplateResponse {
	if data == nil {
		data = ContextData{}
	}
	return &TemplateResponse{
		status: http.StatusOK,
		header: http.Header{"Content-Type": htmlCT},
		tmpl:   tmpl,
		data:   data,
	}
}

func (r *TemplateResponse) StatusCode() int          { return r.status }
func (r *TemplateResponse) Streaming() bool          { return false }
func (r *TemplateResponse) Header() http.Header      { return r.header }
func (r *TemplateResponse) ContextData() ContextData { return r.data }
func (r *TemplateResponse) Rendered() bool           { return r.rendered }

// Body returns the rendered bytes, or nil before Render.
func (r *TemplateResponse) Body() []byte { return r.body }

// OnPostRender registers fn to observe the finalized response. Callbacks run
// in registration order after Render; registering on an already rendered
// response runs fn immediately.
func (r *TemplateResponse) OnPostRender(fn func(Response)) {
	if r.rendered {
		fn(r)
		return
	}
	r.callbacks = append(r.callbacks, fn)
}

// Render executes the template and fires post-render callbacks. Rendering
// twice is an error.
func (r *TemplateResponse) Render(ctx context.Context) error {
	if r.rendered {
		return fmt.Errorf("template response rendered twice")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, map[string]any(r.data)); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.body = buf.Bytes()
	r.rendered = true
	for _, fn := range r.callbacks {
		fn(r)
	}
	r.callbacks = nil
	return nil
}

func (r *TemplateResponse) Write(w http.ResponseWriter) error {
	if !r.rendered {
		return ErrNotRendered
	}
	writeHead(w, r.header, r.status)
	_, err := w.Write(r.body)
	return err
}
