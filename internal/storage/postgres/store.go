package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the reader and writer interfaces used by the HTTP API and the budget service.
//
// It is intentionally small and explicit. The expected schema lives in
// db/migrations. Numeric columns are selected as text and parsed into
// billing.Decimal so no value passes through float64.

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/errs"
	"github.com/tinoosan/costapi/internal/query"
)

// Options tunes the connection pool. Zero values keep pgx defaults.
type Options struct {
	MaxConns         int32
	MaxConnLifetime  time.Duration
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
}

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
// Each call acquires a pooled connection and releases it before returning.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil { return nil, fmt.Errorf("parse dsn: %w", err) }
	if opts.MaxConns > 0 { cfg.MaxConns = opts.MaxConns }
	if opts.MaxConnLifetime > 0 { cfg.MaxConnLifetime = opts.MaxConnLifetime }
	if opts.ConnectTimeout > 0 { cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout }
	if opts.StatementTimeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(opts.StatementTimeout.Milliseconds(), 10)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil { return nil, err }
	// Verify connection
	if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ping runs a trivial query to verify the database answers.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	return s.pool.QueryRow(ctx, `select 1`).Scan(&one)
}

// --- Clients ---

const clientCols = `client_id, client_name, created_date`

func (s *Store) ListClients(ctx context.Context, p query.Page) ([]billing.Client, error) {
	var w where
	sql := `select ` + clientCols + ` from clients order by client_id desc` + w.page(p)
	return collect(ctx, s.pool, sql, w.args, scanClient)
}

func (s *Store) GetClient(ctx context.Context, id int64) (billing.Client, error) {
	c, err := scanClient(s.pool.QueryRow(ctx, `select `+clientCols+` from clients where client_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Client{}, errs.NotFound(billing.ResourceClient, id) }
	return c, err
}

func scanClient(row pgx.Row) (billing.Client, error) {
	var c billing.Client
	var created pgtype.Timestamp
	if err := row.Scan(&c.ID, &c.Name, &created); err != nil { return billing.Client{}, err }
	c.CreatedDate = timestampOf(created)
	return c, nil
}

// --- Providers ---

func (s *Store) ListProviders(ctx context.Context, p query.Page) ([]billing.Provider, error) {
	var w where
	sql := `select provider_id, provider_name from providers order by provider_id desc` + w.page(p)
	return collect(ctx, s.pool, sql, w.args, scanProvider)
}

func (s *Store) GetProvider(ctx context.Context, id int64) (billing.Provider, error) {
	p, err := scanProvider(s.pool.QueryRow(ctx, `select provider_id, provider_name from providers where provider_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Provider{}, errs.NotFound(billing.ResourceProvider, id) }
	return p, err
}

func scanProvider(row pgx.Row) (billing.Provider, error) {
	var p billing.Provider
	err := row.Scan(&p.ID, &p.Name)
	return p, err
}

// --- Services ---

const serviceCols = `service_id, service_name, service_type, service_cost::text, provider_id, service_unit, created_date`

func (s *Store) ListServices(ctx context.Context, p query.Page) ([]billing.Service, error) {
	var w where
	sql := `select ` + serviceCols + ` from services order by service_id desc` + w.page(p)
	return collect(ctx, s.pool, sql, w.args, scanService)
}

func (s *Store) GetService(ctx context.Context, id int64) (billing.Service, error) {
	v, err := scanService(s.pool.QueryRow(ctx, `select `+serviceCols+` from services where service_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Service{}, errs.NotFound(billing.ResourceService, id) }
	return v, err
}

func scanService(row pgx.Row) (billing.Service, error) {
	var v billing.Service
	var cost string
	var created pgtype.Timestamp
	if err := row.Scan(&v.ID, &v.Name, &v.Type, &cost, &v.ProviderID, &v.Unit, &created); err != nil { return billing.Service{}, err }
	var err error
	if v.UnitCost, err = parseNumeric("service_cost", cost); err != nil { return billing.Service{}, err }
	v.CreatedDate = timestampOf(created)
	return v, nil
}

// --- Usages ---

const usageCols = `usage_id, client_id, service_id, usage_date, usage_time, units_used::text, total_cost::text, created_date`

// ListUsages returns usages ordered by usage_date desc, then usage_id desc.
func (s *Store) ListUsages(ctx context.Context, q query.List) ([]billing.Usage, error) {
	var w where
	w.scope(q.Scope)
	w.dateRange("usage_date", q.Range)
	sql := `select ` + usageCols + ` from usages` + w.sql() +
		` order by usage_date desc nulls last, usage_id desc` + w.page(q.Page)
	return collect(ctx, s.pool, sql, w.args, scanUsage)
}

func (s *Store) GetUsage(ctx context.Context, id int64, scope query.Scope) (billing.Usage, error) {
	var w where
	w.add(`usage_id = $%d`, id)
	w.scope(scope)
	u, err := scanUsage(s.pool.QueryRow(ctx, `select `+usageCols+` from usages`+w.sql(), w.args...))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Usage{}, errs.NotFound(billing.ResourceUsage, id) }
	return u, err
}

func scanUsage(row pgx.Row) (billing.Usage, error) {
	var u billing.Usage
	var day pgtype.Date
	var at pgtype.Time
	var units, cost string
	var created pgtype.Timestamp
	if err := row.Scan(&u.ID, &u.ClientID, &u.ServiceID, &day, &at, &units, &cost, &created); err != nil { return billing.Usage{}, err }
	var err error
	if u.UnitsUsed, err = parseNumeric("units_used", units); err != nil { return billing.Usage{}, err }
	if u.TotalCost, err = parseNumeric("total_cost", cost); err != nil { return billing.Usage{}, err }
	u.UsageDate = dateOf(day)
	if at.Valid {
		t := billing.TimeOfDayFromMicros(at.Microseconds)
		u.UsageTime = &t
	}
	u.CreatedDate = timestampOf(created)
	return u, nil
}

// --- Invoices ---

const invoiceCols = `invoice_id, client_id, invoice_date, invoice_amount::text, created_date`

// ListInvoices returns invoices ordered by invoice_date desc, then invoice_id desc.
func (s *Store) ListInvoices(ctx context.Context, q query.List) ([]billing.Invoice, error) {
	var w where
	w.scope(query.Scope{ClientID: q.Scope.ClientID})
	w.dateRange("invoice_date", q.Range)
	sql := `select ` + invoiceCols + ` from invoices` + w.sql() +
		` order by invoice_date desc nulls last, invoice_id desc` + w.page(q.Page)
	return collect(ctx, s.pool, sql, w.args, scanInvoice)
}

func (s *Store) GetInvoice(ctx context.Context, id int64, scope query.Scope) (billing.Invoice, error) {
	var w where
	w.add(`invoice_id = $%d`, id)
	w.scope(query.Scope{ClientID: scope.ClientID})
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `select `+invoiceCols+` from invoices`+w.sql(), w.args...))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Invoice{}, errs.NotFound(billing.ResourceInvoice, id) }
	return inv, err
}

func scanInvoice(row pgx.Row) (billing.Invoice, error) {
	var inv billing.Invoice
	var day pgtype.Date
	var amount string
	var created pgtype.Timestamp
	if err := row.Scan(&inv.ID, &inv.ClientID, &day, &amount, &created); err != nil { return billing.Invoice{}, err }
	var err error
	if inv.Amount, err = parseNumeric("invoice_amount", amount); err != nil { return billing.Invoice{}, err }
	inv.InvoiceDate = dateOf(day)
	inv.CreatedDate = timestampOf(created)
	return inv, nil
}

// --- Budgets ---

const budgetCols = `budget_id, client_id, budget_amount::text, monthly_limit::text, alert_threshold::text, alert_enabled, created_date`

func (s *Store) ListBudgets(ctx context.Context, q query.List) ([]billing.Budget, error) {
	var w where
	w.scope(query.Scope{ClientID: q.Scope.ClientID})
	sql := `select ` + budgetCols + ` from budgets` + w.sql() + ` order by budget_id desc` + w.page(q.Page)
	return collect(ctx, s.pool, sql, w.args, scanBudget)
}

func (s *Store) GetBudget(ctx context.Context, id int64, scope query.Scope) (billing.Budget, error) {
	var w where
	w.add(`budget_id = $%d`, id)
	w.scope(query.Scope{ClientID: scope.ClientID})
	b, err := scanBudget(s.pool.QueryRow(ctx, `select `+budgetCols+` from budgets`+w.sql(), w.args...))
	if errors.Is(err, pgx.ErrNoRows) { return billing.Budget{}, errs.NotFound(billing.ResourceBudget, id) }
	return b, err
}

// UpdateBudget writes only the fields present in p, in a single statement.
func (s *Store) UpdateBudget(ctx context.Context, id int64, p billing.BudgetPatch) error {
	var sets []string
	var args []any
	set := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}
	// decimals travel as text so the server does the exact conversion
	if p.AlertEnabled != nil { set("alert_enabled = $%d", *p.AlertEnabled) }
	if p.AlertThreshold != nil { set("alert_threshold = $%d::text::numeric", p.AlertThreshold.String()) }
	if p.BudgetAmount != nil { set("budget_amount = $%d::text::numeric", p.BudgetAmount.String()) }
	if p.MonthlyLimit != nil { set("monthly_limit = $%d::text::numeric", p.MonthlyLimit.String()) }
	if len(sets) == 0 { return nil }
	args = append(args, id)
	sql := fmt.Sprintf(`update budgets set %s where budget_id = $%d`, strings.Join(sets, ", "), len(args))
	ct, err := s.pool.Exec(ctx, sql, args...)
	if err != nil { return fmt.Errorf("update budget: %w", err) }
	if ct.RowsAffected() == 0 { return errs.NotFound(billing.ResourceBudget, id) }
	return nil
}

func scanBudget(row pgx.Row) (billing.Budget, error) {
	var b billing.Budget
	var amount, limit, threshold string
	var created pgtype.Timestamp
	if err := row.Scan(&b.ID, &b.ClientID, &amount, &limit, &threshold, &b.AlertEnabled, &created); err != nil { return billing.Budget{}, err }
	var err error
	if b.BudgetAmount, err = parseNumeric("budget_amount", amount); err != nil { return billing.Budget{}, err }
	if b.MonthlyLimit, err = parseNumeric("monthly_limit", limit); err != nil { return billing.Budget{}, err }
	if b.AlertThreshold, err = parseNumeric("alert_threshold", threshold); err != nil { return billing.Budget{}, err }
	b.CreatedDate = timestampOf(created)
	return b, nil
}

// --- helpers ---

// where accumulates conditions and positional arguments.
type where struct {
	conds []string
	args  []any
}

// add appends a condition; expr holds a single %d for the placeholder index.
func (w *where) add(expr string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(expr, len(w.args)))
}

func (w *where) scope(sc query.Scope) {
	if sc.ClientID != nil { w.add(`client_id = $%d`, *sc.ClientID) }
	if sc.ServiceID != nil { w.add(`service_id = $%d`, *sc.ServiceID) }
}

// dateRange adds inclusive bounds on col.
func (w *where) dateRange(col string, r query.DateRange) {
	if r.Start != nil { w.add(col+` >= $%d::date`, r.Start.Time()) }
	if r.End != nil { w.add(col+` <= $%d::date`, r.End.Time()) }
}

func (w *where) sql() string {
	if len(w.conds) == 0 { return "" }
	return ` where ` + strings.Join(w.conds, ` and `)
}

// page appends limit/offset arguments and returns the clause.
func (w *where) page(p query.Page) string {
	w.args = append(w.args, p.Limit, p.Offset)
	return fmt.Sprintf(` limit $%d offset $%d`, len(w.args)-1, len(w.args))
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collect[T any](ctx context.Context, q querier, sql string, args []any, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil { return nil, err }
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil { return nil, err }
		out = append(out, v)
	}
	return out, rows.Err()
}

func parseNumeric(col, s string) (billing.Decimal, error) {
	d, err := billing.ParseDecimal(s)
	if err != nil { return billing.Decimal{}, fmt.Errorf("%s: invalid numeric %q", col, s) }
	return d, nil
}

func dateOf(d pgtype.Date) *billing.Date {
	if !d.Valid { return nil }
	v := billing.DateOf(d.Time)
	return &v
}

func timestampOf(t pgtype.Timestamp) *billing.Timestamp {
	if !t.Valid { return nil }
	v := billing.TimestampOf(t.Time)
	return &v
}
