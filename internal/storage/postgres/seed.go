package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/storage/devseed"
)

// SeedDev inserts the fixture in one transaction. Rows whose id already
// exists are left untouched, so repeated runs are harmless.
func (s *Store) SeedDev(ctx context.Context, f devseed.Fixture) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil { return err }
	defer func() { _ = tx.Rollback(ctx) }()
	if err := seedRows(ctx, tx, f); err != nil { return err }
	return tx.Commit(ctx)
}

func seedRows(ctx context.Context, tx pgx.Tx, f devseed.Fixture) error {
	for _, c := range f.Clients {
		if _, err := tx.Exec(ctx, `
			insert into clients (client_id, client_name, created_date)
			values ($1,$2,$3)
			on conflict (client_id) do nothing
		`, c.ID, c.Name, timestampArg(c.CreatedDate)); err != nil {
			return fmt.Errorf("seed client %d: %w", c.ID, err)
		}
	}
	for _, p := range f.Providers {
		if _, err := tx.Exec(ctx, `
			insert into providers (provider_id, provider_name)
			values ($1,$2)
			on conflict (provider_id) do nothing
		`, p.ID, p.Name); err != nil {
			return fmt.Errorf("seed provider %d: %w", p.ID, err)
		}
	}
	for _, v := range f.Services {
		if _, err := tx.Exec(ctx, `
			insert into services (service_id, service_name, service_type, service_cost, provider_id, service_unit, created_date)
			values ($1,$2,$3,$4::text::numeric,$5,$6,$7)
			on conflict (service_id) do nothing
		`, v.ID, v.Name, v.Type, v.UnitCost.String(), v.ProviderID, v.Unit, timestampArg(v.CreatedDate)); err != nil {
			return fmt.Errorf("seed service %d: %w", v.ID, err)
		}
	}
	for _, u := range f.Usages {
		if _, err := tx.Exec(ctx, `
			insert into usages (usage_id, client_id, service_id, usage_date, usage_time, units_used, total_cost, created_date)
			values ($1,$2,$3,$4,$5,$6::text::numeric,$7::text::numeric,$8)
			on conflict (usage_id) do nothing
		`, u.ID, u.ClientID, u.ServiceID, dateArg(u.UsageDate), timeArg(u.UsageTime), u.UnitsUsed.String(), u.TotalCost.String(), timestampArg(u.CreatedDate)); err != nil {
			return fmt.Errorf("seed usage %d: %w", u.ID, err)
		}
	}
	for _, inv := range f.Invoices {
		if _, err := tx.Exec(ctx, `
			insert into invoices (invoice_id, client_id, invoice_date, invoice_amount, created_date)
			values ($1,$2,$3,$4::text::numeric,$5)
			on conflict (invoice_id) do nothing
		`, inv.ID, inv.ClientID, dateArg(inv.InvoiceDate), inv.Amount.String(), timestampArg(inv.CreatedDate)); err != nil {
			return fmt.Errorf("seed invoice %d: %w", inv.ID, err)
		}
	}
	for _, b := range f.Budgets {
		if _, err := tx.Exec(ctx, `
			insert into budgets (budget_id, client_id, budget_amount, monthly_limit, alert_threshold, alert_enabled, created_date)
			values ($1,$2,$3::text::numeric,$4::text::numeric,$5::text::numeric,$6,$7)
			on conflict (budget_id) do nothing
		`, b.ID, b.ClientID, b.BudgetAmount.String(), b.MonthlyLimit.String(), b.AlertThreshold.String(), b.AlertEnabled, timestampArg(b.CreatedDate)); err != nil {
			return fmt.Errorf("seed budget %d: %w", b.ID, err)
		}
	}
	return nil
}

func dateArg(d *billing.Date) pgtype.Date {
	if d == nil { return pgtype.Date{} }
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func timeArg(t *billing.TimeOfDay) pgtype.Time {
	if t == nil { return pgtype.Time{} }
	return pgtype.Time{Microseconds: t.Micros(), Valid: true}
}

func timestampArg(ts *billing.Timestamp) pgtype.Timestamp {
	if ts == nil { return pgtype.Timestamp{} }
	return pgtype.Timestamp{Time: ts.Time(), Valid: true}
}
