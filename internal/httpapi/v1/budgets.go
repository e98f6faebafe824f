package v1

import (
	"io"
	"net/http"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
)

// maxPatchBody caps PATCH bodies; the largest valid body is a few hundred bytes.
const maxPatchBody = 64 << 10

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	items, err := s.budgets.ListBudgets(r.Context(), listQuery(r, query.Scope{}))
	respondList(s, w, r, billing.ResourceBudget, items, err)
}

func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := s.budgets.GetBudget(r.Context(), id, query.Scope{})
	respondItem(s, w, r, billing.ResourceBudget, b, err)
}

// patchBudget handles PATCH /budgets/{id}.
// The body is validated before the budget is looked up, so a bad body on an
// unknown id is a 400. Nothing is written unless the whole body is valid.
func (s *Server) patchBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPatchBody))
	if err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, billing.MsgBodyNotObject, nil)
		return
	}
	p, err := billing.DecodeBudgetPatch(body)
	if err != nil {
		invalid(w, codeBadRequest, err)
		return
	}
	b, err := s.budgetSvc.Patch(r.Context(), id, p)
	respondItem(s, w, r, billing.ResourceBudget, b, err)
}
