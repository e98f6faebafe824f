// Package devseed provides a small deterministic data set for local runs.
// Both the memory and Postgres stores load it when DEV_SEED is enabled.
package devseed

import (
	"time"

	"github.com/tinoosan/costapi/internal/billing"
)

// Fixture is a complete set of rows, parents before children.
type Fixture struct {
	Clients   []billing.Client
	Providers []billing.Provider
	Services  []billing.Service
	Usages    []billing.Usage
	Invoices  []billing.Invoice
	Budgets   []billing.Budget
}

// Default returns the development fixture. Usage 5006 references service
// 9999, which does not exist; the API reports such rows as stored.
func Default() Fixture {
	created := ts(2026, time.January, 1)
	clients := []billing.Client{
		{ID: 1001, Name: "Northwind Traders", CreatedDate: created},
		{ID: 1002, Name: "Contoso Ltd", CreatedDate: created},
		{ID: 1003, Name: "Fabrikam Inc", CreatedDate: created},
	}
	providers := []billing.Provider{
		{ID: 1, Name: "AWS"},
		{ID: 2, Name: "Azure"},
		{ID: 3, Name: "Google Cloud"},
	}
	services := []billing.Service{
		{ID: 101, Name: "EC2", Type: "Compute", UnitCost: billing.MustDecimal("0.0416"), ProviderID: 1, Unit: "hour", CreatedDate: created},
		{ID: 102, Name: "S3", Type: "Storage", UnitCost: billing.MustDecimal("0.0230"), ProviderID: 1, Unit: "GB-month", CreatedDate: created},
		{ID: 201, Name: "Virtual Machines", Type: "Compute", UnitCost: billing.MustDecimal("0.0500"), ProviderID: 2, Unit: "hour", CreatedDate: created},
		{ID: 202, Name: "Blob Storage", Type: "Storage", UnitCost: billing.MustDecimal("0.0184"), ProviderID: 2, Unit: "GB-month", CreatedDate: created},
		{ID: 301, Name: "Compute Engine", Type: "Compute", UnitCost: billing.MustDecimal("0.0475"), ProviderID: 3, Unit: "hour", CreatedDate: created},
	}
	usages := []billing.Usage{
		usage(5001, 1001, 101, date(2026, time.January, 5), "720", "29.95"),
		usage(5002, 1001, 102, date(2026, time.January, 15), "500", "11.50"),
		usage(5003, 1002, 201, date(2026, time.January, 20), "300", "15.00"),
		usage(5004, 1002, 202, date(2026, time.February, 2), "1000", "18.40"),
		usage(5005, 1003, 301, date(2026, time.February, 10), "200", "9.50"),
		usage(5006, 1003, 9999, date(2026, time.February, 11), "10", "4.20"),
	}
	invoices := []billing.Invoice{
		{ID: 7001, ClientID: 1001, InvoiceDate: date(2026, time.January, 31), Amount: billing.MustDecimal("41.45"), CreatedDate: created},
		{ID: 7002, ClientID: 1002, InvoiceDate: date(2026, time.January, 31), Amount: billing.MustDecimal("15.00"), CreatedDate: created},
		{ID: 7003, ClientID: 1002, InvoiceDate: date(2026, time.February, 28), Amount: billing.MustDecimal("18.40"), CreatedDate: created},
		{ID: 7004, ClientID: 1003, InvoiceDate: date(2026, time.February, 28), Amount: billing.MustDecimal("13.70"), CreatedDate: created},
	}
	budgets := []billing.Budget{
		{ID: 1, ClientID: 1001, BudgetAmount: billing.MustDecimal("5000.00"), MonthlyLimit: billing.MustDecimal("6000.00"), AlertThreshold: billing.MustDecimal("80.00"), AlertEnabled: true, CreatedDate: created},
		{ID: 2, ClientID: 1002, BudgetAmount: billing.MustDecimal("3000.00"), MonthlyLimit: billing.MustDecimal("3500.00"), AlertThreshold: billing.MustDecimal("85.00"), AlertEnabled: true, CreatedDate: created},
		{ID: 3, ClientID: 1003, BudgetAmount: billing.MustDecimal("2000.00"), MonthlyLimit: billing.MustDecimal("2500.00"), AlertThreshold: billing.MustDecimal("90.00"), AlertEnabled: false, CreatedDate: created},
	}
	return Fixture{Clients: clients, Providers: providers, Services: services, Usages: usages, Invoices: invoices, Budgets: budgets}
}

func usage(id, clientID, serviceID int64, d *billing.Date, units, cost string) billing.Usage {
	at := billing.NewTimeOfDay(12, 0, 0)
	return billing.Usage{
		ID:          id,
		ClientID:    clientID,
		ServiceID:   serviceID,
		UsageDate:   d,
		UsageTime:   &at,
		UnitsUsed:   billing.MustDecimal(units),
		TotalCost:   billing.MustDecimal(cost),
		CreatedDate: ts(d.Time().Year(), d.Time().Month(), d.Time().Day()),
	}
}

func date(y int, m time.Month, d int) *billing.Date {
	v := billing.NewDate(y, m, d)
	return &v
}

func ts(y int, m time.Month, d int) *billing.Timestamp {
	v := billing.TimestampOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}
