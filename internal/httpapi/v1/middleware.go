package v1

import (
	"context"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/costapi/internal/query"
)

type ctxKey string

const ctxKeyPage ctxKey = "validatedPage"
const ctxKeyDateRange ctxKey = "validatedDateRange"

// validatePaging parses limit/page/offset and stores the window in the request
// context. Unknown parameters are ignored.
func (s *Server) validatePaging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := query.ParsePage(r.URL.Query())
			if err != nil {
				invalid(w, codeInvalidQuery, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPage, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateDateRange parses start_date/end_date and stores the range in the request context.
func (s *Server) validateDateRange() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dr, err := query.ParseDateRange(r.URL.Query())
			if err != nil {
				invalid(w, codeInvalidQuery, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyDateRange, dr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// listQuery assembles the validated list parameters with the given scope.
func listQuery(r *http.Request, scope query.Scope) query.List {
	q := query.List{Page: query.DefaultPaging(), Scope: scope}
	if p, ok := r.Context().Value(ctxKeyPage).(query.Page); ok {
		q.Page = p
	}
	if dr, ok := r.Context().Value(ctxKeyDateRange).(query.DateRange); ok {
		q.Range = dr
	}
	return q
}

// pathID reads a numeric path parameter. Routes constrain ids to digits, so
// the only failure left is overflow, which is answered like an unknown route.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		routeNotFound(w, r)
		return 0, false
	}
	return id, true
}
