package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	vambrace "github.com/vambrace/vambrace/internal"
	"github.com/vambrace/vambrace/internal/telemetry"
	"github.com/vambrace/vambrace/internal/view"
)

var tracer = telemetry.Tracer("server")

// serveView adapts a composed view to an http.Handler. Deferred responses are
// rendered here, which fires their post-render callbacks (and so any deferred
// cache write) before the body is written to the client.
func (s *server) serveView(v view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "view.serve",
			trace.WithAttributes(attribute.String("http.route", routePattern(r))),
		)
		defer span.End()

		resp, err := v.Serve(r.WithContext(ctx))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			writeJSON(w, errorStatus(err), errorResponse(err.Error()))
			return
		}

		if d, ok := resp.(vambrace.Deferred); ok && !d.Rendered() {
			if err := d.Render(ctx); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				slog.LogAttrs(ctx, slog.LevelError, "render failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
				return
			}
		}

		if rd, ok := resp.(*vambrace.RedirectResponse); ok && rd.StatusCode() == http.StatusMovedPermanently {
			if s.deps.Metrics != nil {
				s.deps.Metrics.SlugRedirects.Inc()
			}
		}

		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
		if err := resp.Write(w); err != nil {
			slog.LogAttrs(ctx, slog.LevelError, "write response",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
	}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorResponse(msg string) apiError {
	var e apiError
	e.Error.Message = msg
	return e
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, vambrace.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vambrace.ErrBadRequest), errors.Is(err, vambrace.ErrMalformedTimeout):
		return http.StatusBadRequest
	case errors.Is(err, vambrace.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, vambrace.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// jsonCT is a pre-allocated header value slice. Direct map assignment avoids
// the []string{v} alloc that Header.Set creates on every call.
var jsonCT = []string{"application/json"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header()["Content-Type"] = jsonCT
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parsePagination(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return
}
