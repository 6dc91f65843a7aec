package view

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	vambrace "github.com/vambrace/vambrace/internal"
)

// Headline adds a fixed "headline" value to the render context of
// context-carrying responses. An empty headline is a configuration error.
func Headline(headline string) (Behavior, error) {
	if headline == "" {
		return nil, fmt.Errorf("%w: headline is empty; set one or use HeadlineFunc", vambrace.ErrNotConfigured)
	}
	return HeadlineFunc(func(*http.Request) (string, error) { return headline, nil })
}

// HeadlineFunc is the per-request form of Headline: fn computes the headline
// from the request before rendering.
func HeadlineFunc(fn func(r *http.Request) (string, error)) (Behavior, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: headline function is nil", vambrace.ErrNotConfigured)
	}
	return func(next View) View {
		return Func(func(r *http.Request) (vambrace.Response, error) {
			resp, err := next.Serve(r)
			if err != nil {
				return nil, err
			}
			if cc, ok := resp.(vambrace.ContextCarrier); ok {
				headline, err := fn(r)
				if err != nil {
					return nil, err
				}
				cc.ContextData()["headline"] = headline
			}
			return resp, nil
		})
	}, nil
}

// StaticContext merges fixed values into the render context of
// context-carrying responses. A nil map is a configuration error.
func StaticContext(values vambrace.ContextData) (Behavior, error) {
	if values == nil {
		return nil, fmt.Errorf("%w: static context is nil", vambrace.ErrNotConfigured)
	}
	return func(next View) View {
		return Func(func(r *http.Request) (vambrace.Response, error) {
			resp, err := next.Serve(r)
			if err != nil {
				return nil, err
			}
			if cc, ok := resp.(vambrace.ContextCarrier); ok {
				cc.ContextData().Merge(values)
			}
			return resp, nil
		})
	}, nil
}

// StaticContextJSON is the config-file form of StaticContext: raw must be a
// JSON object whose members become render-context values.
func StaticContextJSON(raw string) (Behavior, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: static context JSON is empty", vambrace.ErrNotConfigured)
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: static context is not valid JSON", vambrace.ErrNotConfigured)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: static context JSON must be an object", vambrace.ErrNotConfigured)
	}
	values, _ := parsed.Value().(map[string]any)
	return StaticContext(vambrace.ContextData(values))
}
