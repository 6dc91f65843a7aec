package view

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	vambrace "github.com/vambrace/vambrace/internal"
)

var testTmpl = template.Must(template.New("t").Parse("{{.headline}}"))

func templateView() Func {
	return func(*http.Request) (vambrace.Response, error) {
		return vambrace.NewTemplate(testTmpl, nil), nil
	}
}

func serveContext(t *testing.T, v View) vambrace.ContextData {
	t.Helper()
	resp, err := v.Serve(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	cc, ok := resp.(vambrace.ContextCarrier)
	if !ok {
		t.Fatalf("response %T does not carry context", resp)
	}
	return cc.ContextData()
}

func TestHeadline(t *testing.T) {
	t.Parallel()

	b, err := Headline("Breaking News")
	if err != nil {
		t.Fatal(err)
	}
	data := serveContext(t, Compose(templateView(), b))
	if data["headline"] != "Breaking News" {
		t.Errorf("headline = %v", data["headline"])
	}
}

func TestHeadline_Empty(t *testing.T) {
	t.Parallel()

	if _, err := Headline(""); !errors.Is(err, vambrace.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
	if _, err := HeadlineFunc(nil); !errors.Is(err, vambrace.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestHeadlineFunc(t *testing.T) {
	t.Parallel()

	b, err := HeadlineFunc(func(r *http.Request) (string, error) {
		return "for " + r.URL.Path, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	data := serveContext(t, Compose(templateView(), b))
	if data["headline"] != "for /" {
		t.Errorf("headline = %v", data["headline"])
	}
}

func TestHeadlineFunc_ErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	b, err := HeadlineFunc(func(*http.Request) (string, error) { return "", boom })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compose(templateView(), b).Serve(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestHeadline_IgnoresPlainResponses(t *testing.T) {
	t.Parallel()

	b, err := Headline("H")
	if err != nil {
		t.Fatal(err)
	}
	v := Compose(okView("plain"), b)
	resp, err := v.Serve(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	// A response without a render context passes through untouched.
	if _, ok := resp.(vambrace.ContextCarrier); ok {
		t.Fatal("content response should not carry context")
	}
}

func TestStaticContext(t *testing.T) {
	t.Parallel()

	b, err := StaticContext(vambrace.ContextData{"site": "vambrace"})
	if err != nil {
		t.Fatal(err)
	}
	data := serveContext(t, Compose(templateView(), b))
	if data["site"] != "vambrace" {
		t.Errorf("site = %v", data["site"])
	}
}

func TestStaticContext_Nil(t *testing.T) {
	t.Parallel()

	if _, err := StaticContext(nil); !errors.Is(err, vambrace.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestStaticContextJSON(t *testing.T) {
	t.Parallel()

	b, err := StaticContextJSON(`{"site": "vambrace", "year": 2026}`)
	if err != nil {
		t.Fatal(err)
	}
	data := serveContext(t, Compose(templateView(), b))
	if data["site"] != "vambrace" {
		t.Errorf("site = %v", data["site"])
	}
	if data["year"] != float64(2026) {
		t.Errorf("year = %v (%T)", data["year"], data["year"])
	}
}

func TestStaticContextJSON_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "{bad json", `"just a string"`, `[1,2,3]`} {
		if _, err := StaticContextJSON(raw); !errors.Is(err, vambrace.ErrNotConfigured) {
			t.Errorf("StaticContextJSON(%q) error = %v, want ErrNotConfigured", raw, err)
		}
	}
}

func TestBehaviorsRunBeforeRender(t *testing.T) {
	t.Parallel()

	hb, err := Headline("Late Binding")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := Compose(templateView(), hb).Serve(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	d := resp.(vambrace.Deferred)
	if d.Rendered() {
		t.Fatal("behaviors must not force rendering")
	}
	if err := d.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	body := string(resp.(vambrace.Bodied).Body())
	if body != "Late Binding" {
		t.Errorf("body = %q", body)
	}
}
