// Package budget implements budget partial updates: the budget must exist
// before anything is written, empty patches are a no-op, and the caller
// always gets the stored state back.
package budget

import (
	"context"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
)

type Repo interface {
	GetBudget(ctx context.Context, id int64, scope query.Scope) (billing.Budget, error)
}

type Writer interface {
	UpdateBudget(ctx context.Context, id int64, p billing.BudgetPatch) error
}

type Service interface {
	Patch(ctx context.Context, id int64, p billing.BudgetPatch) (billing.Budget, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// Patch applies p to budget id and returns the row as read back afterwards.
// Concurrent patches are last-writer-wins; no compare-and-swap is attempted.
func (s *service) Patch(ctx context.Context, id int64, p billing.BudgetPatch) (billing.Budget, error) {
	current, err := s.repo.GetBudget(ctx, id, query.Scope{})
	if err != nil {
		return billing.Budget{}, err
	}
	if p.Empty() {
		return current, nil
	}
	if err := s.writer.UpdateBudget(ctx, id, p); err != nil {
		return billing.Budget{}, err
	}
	return s.repo.GetBudget(ctx, id, query.Scope{})
}
