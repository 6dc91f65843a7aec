// Package view provides composable request-handling behaviors. A View turns a
// request into a Response; Behaviors wrap views to layer in reusable concerns
// such as render-context injection, canonical-slug redirects, and response
// caching. Behaviors are applied with explicit ordering instead of implicit
// inheritance chains, and every constructor validates its configuration up
// front so a misconfigured view fails at startup.
package view

import (
	"net/http"

	vambrace "github.com/vambrace/vambrace/internal"
)

// View handles a request and produces a Response.
type View interface {
	Serve(r *http.Request) (vambrace.Response, error)
}

// Func adapts a plain function to the View interface.
type Func func(r *http.Request) (vambrace.Response, error)

// Serve implements View.
func (f Func) Serve(r *http.Request) (vambrace.Response, error) { return f(r) }

// Behavior wraps a view with additional behavior.
type Behavior func(View) View

// Compose applies behaviors to v in the order given: the first behavior is
// outermost and observes the request first and the response last.
func Compose(v View, behaviors ...Behavior) View {
	for i := len(behaviors) - 1; i >= 0; i-- {
		v = behaviors[i](v)
	}
	return v
}

// Methods dispatches to a handler by HTTP method. Requests for unregistered
// methods fail with ErrMethodNotAllowed.
type Methods map[string]Func

// Serve implements View.
func (m Methods) Serve(r *http.Request) (vambrace.Response, error) {
	fn, ok := m[r.Method]
	if !ok {
		return nil, vambrace.ErrMethodNotAllowed
	}
	return fn(r)
}
