// Client handlers, including the client-scoped budgets, invoices and usages.
package v1

import (
	"net/http"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
)

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r, query.Scope{})
	items, err := s.clients.ListClients(r.Context(), q.Page)
	respondList(s, w, r, billing.ResourceClient, items, err)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := s.clients.GetClient(r.Context(), id)
	respondItem(s, w, r, billing.ResourceClient, c, err)
}

// listClientBudgets handles GET /clients/{id}/budgets. An unknown client
// yields an empty list, not a 404.
func (s *Server) listClientBudgets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := s.budgets.ListBudgets(r.Context(), listQuery(r, query.ByClient(id)))
	respondList(s, w, r, billing.ResourceBudget, items, err)
}

func (s *Server) getClientBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	bid, ok := pathID(w, r, "bid")
	if !ok {
		return
	}
	b, err := s.budgets.GetBudget(r.Context(), bid, query.ByClient(id))
	respondItem(s, w, r, billing.ResourceBudget, b, err)
}

func (s *Server) listClientInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := s.invoices.ListInvoices(r.Context(), listQuery(r, query.ByClient(id)))
	respondList(s, w, r, billing.ResourceInvoice, items, err)
}

func (s *Server) getClientInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	iid, ok := pathID(w, r, "iid")
	if !ok {
		return
	}
	inv, err := s.invoices.GetInvoice(r.Context(), iid, query.ByClient(id))
	respondItem(s, w, r, billing.ResourceInvoice, inv, err)
}

func (s *Server) listClientUsages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := s.usages.ListUsages(r.Context(), listQuery(r, query.ByClient(id)))
	respondList(s, w, r, billing.ResourceUsage, items, err)
}

func (s *Server) getClientUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	u, err := s.usages.GetUsage(r.Context(), uid, query.ByClient(id))
	respondItem(s, w, r, billing.ResourceUsage, u, err)
}
