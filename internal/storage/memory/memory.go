// Package memory provides a simple in-memory implementation used for development and tests.
// It mirrors the ordering, paging and filtering of the Postgres store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/errs"
	"github.com/tinoosan/costapi/internal/query"
	"github.com/tinoosan/costapi/internal/storage/devseed"
)

// Store is an in-memory implementation of the readers and writer used by the API.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu        sync.RWMutex
	clients   map[int64]billing.Client
	providers map[int64]billing.Provider
	services  map[int64]billing.Service
	usages    map[int64]billing.Usage
	invoices  map[int64]billing.Invoice
	budgets   map[int64]billing.Budget
	// pingErr, when set, is returned by Ping to simulate an unreachable database.
	pingErr error
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Seed helpers for local dev/tests.
func (s *Store) SeedClient(c billing.Client)     { s.mu.Lock(); s.clients[c.ID] = c; s.mu.Unlock() }
func (s *Store) SeedProvider(p billing.Provider) { s.mu.Lock(); s.providers[p.ID] = p; s.mu.Unlock() }
func (s *Store) SeedService(v billing.Service)   { s.mu.Lock(); s.services[v.ID] = v; s.mu.Unlock() }
func (s *Store) SeedUsage(u billing.Usage)       { s.mu.Lock(); s.usages[u.ID] = u; s.mu.Unlock() }
func (s *Store) SeedInvoice(i billing.Invoice)   { s.mu.Lock(); s.invoices[i.ID] = i; s.mu.Unlock() }
func (s *Store) SeedBudget(b billing.Budget)     { s.mu.Lock(); s.budgets[b.ID] = b; s.mu.Unlock() }

// Load seeds every row of the fixture.
func (s *Store) Load(f devseed.Fixture) {
	for _, c := range f.Clients {
		s.SeedClient(c)
	}
	for _, p := range f.Providers {
		s.SeedProvider(p)
	}
	for _, v := range f.Services {
		s.SeedService(v)
	}
	for _, u := range f.Usages {
		s.SeedUsage(u)
	}
	for _, i := range f.Invoices {
		s.SeedInvoice(i)
	}
	for _, b := range f.Budgets {
		s.SeedBudget(b)
	}
}

// SetPingError makes Ping fail with err (nil restores health).
func (s *Store) SetPingError(err error) { s.mu.Lock(); s.pingErr = err; s.mu.Unlock() }

func (s *Store) Reset() {
	s.mu.Lock()
	s.clients = map[int64]billing.Client{}
	s.providers = map[int64]billing.Provider{}
	s.services = map[int64]billing.Service{}
	s.usages = map[int64]billing.Usage{}
	s.invoices = map[int64]billing.Invoice{}
	s.budgets = map[int64]billing.Budget{}
	s.pingErr = nil
	s.mu.Unlock()
}

// Ping reports the simulated database health.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}

// --- Clients / providers / services ---

func (s *Store) ListClients(_ context.Context, p query.Page) ([]billing.Client, error) {
	s.mu.RLock()
	out := values(s.clients)
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, p), nil
}

func (s *Store) GetClient(_ context.Context, id int64) (billing.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return billing.Client{}, errs.NotFound(billing.ResourceClient, id)
	}
	return c, nil
}

func (s *Store) ListProviders(_ context.Context, p query.Page) ([]billing.Provider, error) {
	s.mu.RLock()
	out := values(s.providers)
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, p), nil
}

func (s *Store) GetProvider(_ context.Context, id int64) (billing.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[id]
	if !ok {
		return billing.Provider{}, errs.NotFound(billing.ResourceProvider, id)
	}
	return p, nil
}

func (s *Store) ListServices(_ context.Context, p query.Page) ([]billing.Service, error) {
	s.mu.RLock()
	out := values(s.services)
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, p), nil
}

func (s *Store) GetService(_ context.Context, id int64) (billing.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.services[id]
	if !ok {
		return billing.Service{}, errs.NotFound(billing.ResourceService, id)
	}
	return v, nil
}

// --- Usages / invoices ---

// ListUsages returns usages ordered by usage_date desc (nulls last), then id desc.
func (s *Store) ListUsages(_ context.Context, q query.List) ([]billing.Usage, error) {
	s.mu.RLock()
	out := make([]billing.Usage, 0, len(s.usages))
	for _, u := range s.usages {
		if inScope(q.Scope, u.ClientID, u.ServiceID) && q.Range.Contains(u.UsageDate) {
			out = append(out, u)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return dateDescThenID(out[i].UsageDate, out[j].UsageDate, out[i].ID, out[j].ID)
	})
	return window(out, q.Page), nil
}

func (s *Store) GetUsage(_ context.Context, id int64, scope query.Scope) (billing.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usages[id]
	if !ok || !inScope(scope, u.ClientID, u.ServiceID) {
		return billing.Usage{}, errs.NotFound(billing.ResourceUsage, id)
	}
	return u, nil
}

// ListInvoices returns invoices ordered by invoice_date desc (nulls last), then id desc.
func (s *Store) ListInvoices(_ context.Context, q query.List) ([]billing.Invoice, error) {
	s.mu.RLock()
	out := make([]billing.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if inScope(q.Scope, inv.ClientID, 0) && q.Range.Contains(inv.InvoiceDate) {
			out = append(out, inv)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return dateDescThenID(out[i].InvoiceDate, out[j].InvoiceDate, out[i].ID, out[j].ID)
	})
	return window(out, q.Page), nil
}

func (s *Store) GetInvoice(_ context.Context, id int64, scope query.Scope) (billing.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok || !inScope(scope, inv.ClientID, 0) {
		return billing.Invoice{}, errs.NotFound(billing.ResourceInvoice, id)
	}
	return inv, nil
}

// --- Budgets ---

func (s *Store) ListBudgets(_ context.Context, q query.List) ([]billing.Budget, error) {
	s.mu.RLock()
	out := make([]billing.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if inScope(q.Scope, b.ClientID, 0) {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, q.Page), nil
}

func (s *Store) GetBudget(_ context.Context, id int64, scope query.Scope) (billing.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok || !inScope(scope, b.ClientID, 0) {
		return billing.Budget{}, errs.NotFound(billing.ResourceBudget, id)
	}
	return b, nil
}

// UpdateBudget applies the patched fields to the stored budget.
func (s *Store) UpdateBudget(_ context.Context, id int64, p billing.BudgetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return errs.NotFound(billing.ResourceBudget, id)
	}
	s.budgets[id] = p.Apply(b)
	return nil
}

// --- helpers ---

func values[T any](m map[int64]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// window slices out the requested page; out-of-range pages are empty.
func window[T any](items []T, p query.Page) []T {
	if p.Offset < 0 || p.Limit <= 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

// inScope checks the parent ids of a row against the scope. A serviceID of
// 0 marks rows without a service column.
func inScope(sc query.Scope, clientID, serviceID int64) bool {
	if sc.ClientID != nil && *sc.ClientID != clientID {
		return false
	}
	if sc.ServiceID != nil && (serviceID == 0 || *sc.ServiceID != serviceID) {
		return false
	}
	return true
}

func dateDescThenID(a, b *billing.Date, aID, bID int64) bool {
	switch {
	case a != nil && b == nil:
		return true
	case a == nil && b != nil:
		return false
	case a != nil && b != nil && !a.Equal(*b):
		return a.After(*b)
	}
	return aID > bID
}
