package v1

import (
	"context"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/query"
	"github.com/tinoosan/costapi/internal/service/budget"
)

// ClientReader abstracts client read operations.
type ClientReader interface {
	ListClients(ctx context.Context, p query.Page) ([]billing.Client, error)
	GetClient(ctx context.Context, id int64) (billing.Client, error)
}

// ProviderReader abstracts provider read operations.
type ProviderReader interface {
	ListProviders(ctx context.Context, p query.Page) ([]billing.Provider, error)
	GetProvider(ctx context.Context, id int64) (billing.Provider, error)
}

// ServiceReader abstracts cloud service read operations.
type ServiceReader interface {
	ListServices(ctx context.Context, p query.Page) ([]billing.Service, error)
	GetService(ctx context.Context, id int64) (billing.Service, error)
}

// UsageReader abstracts usage reads, optionally scoped to a client or service.
type UsageReader interface {
	ListUsages(ctx context.Context, q query.List) ([]billing.Usage, error)
	GetUsage(ctx context.Context, id int64, scope query.Scope) (billing.Usage, error)
}

// InvoiceReader abstracts invoice reads, optionally scoped to a client.
type InvoiceReader interface {
	ListInvoices(ctx context.Context, q query.List) ([]billing.Invoice, error)
	GetInvoice(ctx context.Context, id int64, scope query.Scope) (billing.Invoice, error)
}

// BudgetReader abstracts budget reads, optionally scoped to a client.
type BudgetReader interface {
	ListBudgets(ctx context.Context, q query.List) ([]billing.Budget, error)
	budget.Repo
}

// Pinger checks connectivity of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repository composes everything the API needs from a store.
// It is satisfied by both the memory and the Postgres stores.
type Repository interface {
	ClientReader
	ProviderReader
	ServiceReader
	UsageReader
	InvoiceReader
	BudgetReader
	budget.Writer
	Pinger
}
