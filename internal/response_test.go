package vambrace

import (
	"context"
	"errors"
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTemplateResponse_RenderAndWrite(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("t").Parse("<h1>{{.headline}}</h1>"))
	resp := NewTemplate(tmpl, ContextData{"headline": "News"})

	if resp.Rendered() {
		t.Fatal("fresh template response should not be rendered")
	}
	if err := resp.Write(httptest.NewRecorder()); !errors.Is(err, ErrNotRendered) {
		t.Fatalf("write before render error = %v, want ErrNotRendered", err)
	}

	if err := resp.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !resp.Rendered() {
		t.Error("Rendered() should be true after Render")
	}
	if got := string(resp.Body()); got != "<h1>News</h1>" {
		t.Errorf("body = %q", got)
	}

	rec := httptest.NewRecorder()
	if err := resp.Write(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}
	if rec.Body.String() != "<h1>News</h1>" {
		t.Errorf("written body = %q", rec.Body.String())
	}
}

func TestTemplateResponse_RenderTwice(t *testing.T) {
	t.Parallel()

	resp := NewTemplate(template.Must(template.New("t").Parse("x")), nil)
	if err := resp.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := resp.Render(context.Background()); err == nil {
		t.Error("second Render should fail")
	}
}

func TestTemplateResponse_PostRenderCallbacks(t *testing.T) {
	t.Parallel()

	resp := NewTemplate(template.Must(template.New("t").Parse("body")), nil)

	var order []string
	resp.OnPostRender(func(r Response) {
		order = append(order, "first")
		if b, ok := r.(Bodied); !ok || string(b.Body()) != "body" {
			t.Error("callback should observe the finalized body")
		}
	})
	resp.OnPostRender(func(Response) { order = append(order, "second") })

	if len(order) != 0 {
		t.Fatal("callbacks must not run before render")
	}
	if err := resp.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("callback order = %v", order)
	}

	// Registering on a rendered response fires immediately.
	fired := false
	resp.OnPostRender(func(Response) { fired = true })
	if !fired {
		t.Error("late callback should fire immediately")
	}
}

func TestTemplateResponse_ContextMutableUntilRender(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("t").Parse("{{.a}}-{{.b}}"))
	resp := NewTemplate(tmpl, ContextData{"a": "1"})
	resp.ContextData().Merge(ContextData{"b": "2"})

	if err := resp.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := string(resp.Body()); got != "1-2" {
		t.Errorf("body = %q, want %q", got, "1-2")
	}
}

func TestContentResponse(t *testing.T) {
	t.Parallel()

	resp := NewContent(201, "application/json", []byte(`{"ok":true}`))
	if resp.Streaming() {
		t.Error("content response is not streaming")
	}

	rec := httptest.NewRecorder()
	if err := resp.Write(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRedirectResponse(t *testing.T) {
	t.Parallel()

	perm := NewRedirect("/pages/1/canonical", true)
	if perm.StatusCode() != 301 {
		t.Errorf("permanent status = %d, want 301", perm.StatusCode())
	}
	temp := NewRedirect("/elsewhere", false)
	if temp.StatusCode() != 302 {
		t.Errorf("temporary status = %d, want 302", temp.StatusCode())
	}

	rec := httptest.NewRecorder()
	if err := perm.Write(rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Header().Get("Location"); got != "/pages/1/canonical" {
		t.Errorf("location = %q", got)
	}
}

func TestStreamResponse(t *testing.T) {
	t.Parallel()

	resp := NewStream(200, "text/plain", strings.NewReader("streamed"))
	if !resp.Streaming() {
		t.Error("stream response should report streaming")
	}
	rec := httptest.NewRecorder()
	if err := resp.Write(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Body.String() != "streamed" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
