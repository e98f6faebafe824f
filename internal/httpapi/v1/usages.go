// Usage and invoice handlers. Both lists honour start_date/end_date.
package v1

import (
	"net/http"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
)

func (s *Server) listUsages(w http.ResponseWriter, r *http.Request) {
	items, err := s.usages.ListUsages(r.Context(), listQuery(r, query.Scope{}))
	respondList(s, w, r, billing.ResourceUsage, items, err)
}

func (s *Server) getUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := s.usages.GetUsage(r.Context(), id, query.Scope{})
	respondItem(s, w, r, billing.ResourceUsage, u, err)
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	items, err := s.invoices.ListInvoices(r.Context(), listQuery(r, query.Scope{}))
	respondList(s, w, r, billing.ResourceInvoice, items, err)
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := s.invoices.GetInvoice(r.Context(), id, query.Scope{})
	respondItem(s, w, r, billing.ResourceInvoice, inv, err)
}
