// Package billing holds the cloud billing domain: clients, providers, the
// services they sell, metered usages, invoices and client budgets.
package billing

// Resource type names used in response metadata and not-found errors.
const (
	ResourceClient   = "client"
	ResourceProvider = "provider"
	ResourceService  = "service"
	ResourceUsage    = "usage"
	ResourceInvoice  = "invoice"
	ResourceBudget   = "budget"
)

// Client is a billed customer.
type Client struct {
	ID          int64      `json:"client_id"`
	Name        string     `json:"client_name"`
	CreatedDate *Timestamp `json:"created_date"`
}

// Provider is a cloud vendor (AWS, Azure, Google Cloud).
type Provider struct {
	ID   int64  `json:"provider_id"`
	Name string `json:"provider_name"`
}

// Service is a priced offering of a provider.
type Service struct {
	ID          int64      `json:"service_id"`
	Name        string     `json:"service_name"`
	Type        string     `json:"service_type"`
	UnitCost    Decimal    `json:"service_cost"`
	ProviderID  int64      `json:"provider_id"`
	Unit        string     `json:"service_unit"`
	CreatedDate *Timestamp `json:"created_date"`
}

// Usage records a client's consumption of a service on a given day.
// ServiceID is not guaranteed to reference an existing service.
type Usage struct {
	ID          int64      `json:"usage_id"`
	ClientID    int64      `json:"client_id"`
	ServiceID   int64      `json:"service_id"`
	UsageDate   *Date      `json:"usage_date"`
	UsageTime   *TimeOfDay `json:"usage_time"`
	UnitsUsed   Decimal    `json:"units_used"`
	TotalCost   Decimal    `json:"total_cost"`
	CreatedDate *Timestamp `json:"created_date"`
}

// Invoice is an amount billed to a client on a date.
type Invoice struct {
	ID          int64      `json:"invoice_id"`
	ClientID    int64      `json:"client_id"`
	InvoiceDate *Date      `json:"invoice_date"`
	Amount      Decimal    `json:"invoice_amount"`
	CreatedDate *Timestamp `json:"created_date"`
}

// Budget is a client's spending budget with alerting settings.
// ID, ClientID and CreatedDate are immutable; the rest can be patched.
type Budget struct {
	ID             int64      `json:"budget_id"`
	ClientID       int64      `json:"client_id"`
	BudgetAmount   Decimal    `json:"budget_amount"`
	MonthlyLimit   Decimal    `json:"monthly_limit"`
	AlertThreshold Decimal    `json:"alert_threshold"`
	AlertEnabled   bool       `json:"alert_enabled"`
	CreatedDate    *Timestamp `json:"created_date"`
}
