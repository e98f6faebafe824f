package v1

import (
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/costapi/internal/errs"
)

// Error codes of the envelope.
const (
	codeBadRequest       = "bad_request"
	codeInvalidQuery     = "invalid_query_params"
	codeResourceNotFound = "resource_not_found"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

func writeErr(w http.ResponseWriter, status int, code, msg string, details any) {
	toJSON(w, status, errorEnvelope{Status: statusError, Error: errorBody{Code: code, Message: msg, Details: details}})
}

// invalid writes a 400 for a validation error; field messages become details.
func invalid(w http.ResponseWriter, code string, err error) {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		if verr.HasFields() {
			writeErr(w, http.StatusBadRequest, code, verr.Message, verr.Fields)
			return
		}
		writeErr(w, http.StatusBadRequest, code, verr.Message, nil)
		return
	}
	writeErr(w, http.StatusBadRequest, code, err.Error(), nil)
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, codeNotFound, "The requested URL was not found on the server.", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "The method is not allowed for the requested URL.", nil)
}

// writeStoreErr maps store/service errors: not-found becomes 404, anything
// else is logged and answered with a generic 500.
func (s *Server) writeStoreErr(w http.ResponseWriter, r *http.Request, err error) {
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		writeErr(w, http.StatusNotFound, codeResourceNotFound, nf.Error(), nil)
		return
	}
	s.log.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	writeErr(w, http.StatusInternalServerError, codeInternal, "Internal server error", nil)
}

// respondList writes items or maps err.
func respondList[T any](s *Server, w http.ResponseWriter, r *http.Request, resource string, items []T, err error) {
	if err != nil {
		s.writeStoreErr(w, r, err)
		return
	}
	writeList(w, resource, items)
}

// respondItem writes item or maps err.
func respondItem[T any](s *Server, w http.ResponseWriter, r *http.Request, resource string, item T, err error) {
	if err != nil {
		s.writeStoreErr(w, r, err)
		return
	}
	writeItem(w, resource, item)
}
