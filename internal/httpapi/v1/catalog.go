package v1

import (
	"net/http"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
)

func (s *Server) listProviders(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r, query.Scope{})
	items, err := s.providers.ListProviders(r.Context(), q.Page)
	respondList(s, w, r, billing.ResourceProvider, items, err)
}

func (s *Server) getProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := s.providers.GetProvider(r.Context(), id)
	respondItem(s, w, r, billing.ResourceProvider, p, err)
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r, query.Scope{})
	items, err := s.services.ListServices(r.Context(), q.Page)
	respondList(s, w, r, billing.ResourceService, items, err)
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, err := s.services.GetService(r.Context(), id)
	respondItem(s, w, r, billing.ResourceService, v, err)
}

func (s *Server) listServiceUsages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := s.usages.ListUsages(r.Context(), listQuery(r, query.ByService(id)))
	respondList(s, w, r, billing.ResourceUsage, items, err)
}

func (s *Server) getServiceUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	u, err := s.usages.GetUsage(r.Context(), uid, query.ByService(id))
	respondItem(s, w, r, billing.ResourceUsage, u, err)
}
