package view

import (
	"fmt"
	"net/http"

	vambrace "github.com/vambrace/vambrace/internal"
)

// allVerbs serves every HTTP method with a single handler.
type allVerbs struct {
	fn Func
}

// AllVerbs returns a view that routes all HTTP methods to fn, bypassing
// per-method dispatch. A nil handler is a configuration error.
func AllVerbs(fn Func) (View, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: all-verbs handler is nil", vambrace.ErrNotConfigured)
	}
	return allVerbs{fn: fn}, nil
}

// Serve implements View.
func (v allVerbs) Serve(r *http.Request) (vambrace.Response, error) {
	return v.fn(r)
}
