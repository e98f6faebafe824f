package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/storage/devseed"
	"github.com/tinoosan/costapi/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type envResp struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Meta   struct {
		Count *int   `json:"count"`
		Type  string `json:"type"`
		DB    string `json:"db"`
	} `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

type idRow struct {
	ClientID  int64 `json:"client_id"`
	UsageID   int64 `json:"usage_id"`
	InvoiceID int64 `json:"invoice_id"`
	BudgetID  int64 `json:"budget_id"`
}

type budgetResp struct {
	BudgetID       int64       `json:"budget_id"`
	ClientID       int64       `json:"client_id"`
	BudgetAmount   json.Number `json:"budget_amount"`
	MonthlyLimit   json.Number `json:"monthly_limit"`
	AlertThreshold json.Number `json:"alert_threshold"`
	AlertEnabled   bool        `json:"alert_enabled"`
	CreatedDate    string      `json:"created_date"`
}

func setup(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.New()
	store.Load(devseed.Default())
	srv := New(store, testLogger(), Config{})
	return store, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envResp) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var env envResp
	dec := json.NewDecoder(bytes.NewReader(rr.Body.Bytes()))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v; body=%s", method, path, err, rr.Body.String())
	}
	return rr, env
}

func rows(t *testing.T, env envResp) []idRow {
	t.Helper()
	var out []idRow
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode list: %v; data=%s", err, env.Data)
	}
	return out
}

func decodeBudget(t *testing.T, env envResp) budgetResp {
	t.Helper()
	var b budgetResp
	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.UseNumber()
	if err := dec.Decode(&b); err != nil {
		t.Fatalf("decode budget: %v; data=%s", err, env.Data)
	}
	return b
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, env envResp, status int, code string) {
	t.Helper()
	expectStatus(t, rr, status)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rr.Body.String())
	}
	if env.Error.Code != code {
		t.Fatalf("expected code %q, got %q", code, env.Error.Code)
	}
}

func TestHealth(t *testing.T) {
	store, h := setup(t)

	rr, _ := do(t, h, http.MethodGet, "/api/v1/health", "")
	expectStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(rr.Body.String()); got != `{"status":"ok"}` {
		t.Fatalf("unexpected health body: %s", got)
	}

	rr, env := do(t, h, http.MethodGet, "/api/v1/health/db", "")
	expectStatus(t, rr, http.StatusOK)
	if env.Meta.DB != "connected" {
		t.Fatalf("expected meta.db=connected, got %q", env.Meta.DB)
	}

	store.SetPingError(errors.New("connection refused"))
	rr, env = do(t, h, http.MethodGet, "/api/v1/health/db", "")
	expectError(t, rr, env, http.StatusInternalServerError, "internal_error")
}

func TestListClients_MetaAndOrder(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/clients", "")
	expectStatus(t, rr, http.StatusOK)
	got := rows(t, env)
	if env.Meta.Type != billing.ResourceClient || env.Meta.Count == nil || *env.Meta.Count != len(got) {
		t.Fatalf("meta mismatch: %+v, rows=%d", env.Meta, len(got))
	}
	want := []int64{1003, 1002, 1001}
	if len(got) != len(want) {
		t.Fatalf("expected %d clients, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ClientID != id {
			t.Fatalf("row %d: expected client %d, got %d", i, id, got[i].ClientID)
		}
	}
}

func TestListEndpoints_CountMatchesData(t *testing.T) {
	_, h := setup(t)
	paths := []string{
		"/api/v1/clients", "/api/v1/providers", "/api/v1/services", "/api/v1/usages",
		"/api/v1/invoices", "/api/v1/budgets", "/api/v1/clients/1002/budgets",
		"/api/v1/clients/1002/invoices", "/api/v1/clients/1002/usages", "/api/v1/services/101/usages",
		"/api/v1/usages?limit=4&page=2", "/api/v1/clients/424242/usages",
	}
	for _, p := range paths {
		rr, env := do(t, h, http.MethodGet, p, "")
		expectStatus(t, rr, http.StatusOK)
		var items []json.RawMessage
		if err := json.Unmarshal(env.Data, &items); err != nil {
			t.Fatalf("%s: data is not an array: %s", p, env.Data)
		}
		if env.Meta.Count == nil || *env.Meta.Count != len(items) {
			t.Fatalf("%s: meta.count=%v but %d items", p, env.Meta.Count, len(items))
		}
	}
}

func TestPaging_NoOverlapNoGap(t *testing.T) {
	_, h := setup(t)
	_, all := do(t, h, http.MethodGet, "/api/v1/usages?limit=50", "")
	full := rows(t, all)
	if len(full) != 6 {
		t.Fatalf("expected 6 usages, got %d", len(full))
	}
	var paged []idRow
	for page := 1; page <= 3; page++ {
		_, env := do(t, h, http.MethodGet, "/api/v1/usages?limit=2&page="+strconv.Itoa(page), "")
		paged = append(paged, rows(t, env)...)
	}
	if len(paged) != len(full) {
		t.Fatalf("pages returned %d rows, want %d", len(paged), len(full))
	}
	for i := range full {
		if paged[i].UsageID != full[i].UsageID {
			t.Fatalf("row %d: paged %d != full %d", i, paged[i].UsageID, full[i].UsageID)
		}
	}
	// date desc, then id desc
	want := []int64{5006, 5005, 5004, 5003, 5002, 5001}
	for i, id := range want {
		if full[i].UsageID != id {
			t.Fatalf("row %d: expected usage %d, got %d", i, id, full[i].UsageID)
		}
	}

	_, env := do(t, h, http.MethodGet, "/api/v1/usages?limit=2&offset=1", "")
	got := rows(t, env)
	if len(got) != 2 || got[0].UsageID != 5005 || got[1].UsageID != 5004 {
		t.Fatalf("offset window mismatch: %+v", got)
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/clients?page=9", "")
	if env.Meta.Count == nil || *env.Meta.Count != 0 {
		t.Fatalf("expected empty page past the end, got %s", env.Data)
	}
}

func TestPaging_FarPastTheEndIsEmpty(t *testing.T) {
	_, h := setup(t)
	for _, path := range []string{
		"/api/v1/clients?limit=10000&page=1000000000000000",
		"/api/v1/usages?limit=50000&page=999999999999999",
		"/api/v1/clients/1002/invoices?page=99999999999999999999999",
		"/api/v1/budgets?offset=99999999999999999999999",
	} {
		rr, env := do(t, h, http.MethodGet, path, "")
		expectStatus(t, rr, http.StatusOK)
		if env.Meta.Count == nil || *env.Meta.Count != 0 {
			t.Fatalf("%s: expected empty page, got %s", path, env.Data)
		}
	}
}

func TestList_UnknownParamsIgnored(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/clients?foo=bar&limit=2", "")
	expectStatus(t, rr, http.StatusOK)
	if env.Meta.Count == nil || *env.Meta.Count != 2 {
		t.Fatalf("expected 2 clients, got %s", env.Data)
	}
	rr, _ = do(t, h, http.MethodGet, "/api/v1/usages?verbose=1&start_date=2026-01-01", "")
	expectStatus(t, rr, http.StatusOK)
}

func TestPaging_InvalidParams(t *testing.T) {
	_, h := setup(t)
	cases := []struct {
		path, field, msg string
	}{
		{"/api/v1/clients?limit=0", "limit", "Must be greater than or equal to 1 and less than or equal to 50000."},
		{"/api/v1/clients?limit=50001", "limit", "Must be greater than or equal to 1 and less than or equal to 50000."},
		{"/api/v1/budgets?limit=abc", "limit", "Not a valid integer."},
		{"/api/v1/providers?page=0", "page", "Must be greater than or equal to 1."},
		{"/api/v1/usages?offset=-1", "offset", "Must be greater than or equal to 0."},
	}
	for _, c := range cases {
		rr, env := do(t, h, http.MethodGet, c.path, "")
		expectError(t, rr, env, http.StatusBadRequest, "invalid_query_params")
		if env.Error.Message != "Invalid query params" {
			t.Fatalf("%s: unexpected message %q", c.path, env.Error.Message)
		}
		if msgs := env.Error.Details[c.field]; len(msgs) != 1 || msgs[0] != c.msg {
			t.Fatalf("%s: details[%s]=%v", c.path, c.field, env.Error.Details)
		}
	}
}

func TestDateRange_Filtering(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/usages?start_date=2026-01-15&end_date=2026-02-02", "")
	expectStatus(t, rr, http.StatusOK)
	got := rows(t, env)
	want := []int64{5004, 5003, 5002}
	if len(got) != len(want) {
		t.Fatalf("expected %d usages in range, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].UsageID != id {
			t.Fatalf("row %d: expected %d, got %d", i, id, got[i].UsageID)
		}
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/invoices?end_date=2026-01-31", "")
	got = rows(t, env)
	if len(got) != 2 || got[0].InvoiceID != 7002 || got[1].InvoiceID != 7001 {
		t.Fatalf("end bound mismatch: %+v", got)
	}
}

func TestDateRange_Invalid(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/usages?start_date=2026-02-01&end_date=2026-01-01", "")
	expectError(t, rr, env, http.StatusBadRequest, "invalid_query_params")
	if msgs := env.Error.Details["start_date"]; len(msgs) != 1 || msgs[0] != "start_date must be on or before end_date." {
		t.Fatalf("unexpected details: %v", env.Error.Details)
	}

	// rejected regardless of data
	rr, env = do(t, h, http.MethodGet, "/api/v1/clients/424242/invoices?start_date=2030-01-02&end_date=2030-01-01", "")
	expectError(t, rr, env, http.StatusBadRequest, "invalid_query_params")

	rr, env = do(t, h, http.MethodGet, "/api/v1/invoices?start_date=2026-13-01", "")
	expectError(t, rr, env, http.StatusBadRequest, "invalid_query_params")
	if msgs := env.Error.Details["start_date"]; len(msgs) != 1 || msgs[0] != "Not a valid date." {
		t.Fatalf("unexpected details: %v", env.Error.Details)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, h := setup(t)
	cases := map[string]string{
		"/api/v1/clients/999999":             "Resource 'client' with id '999999' could not be found.",
		"/api/v1/providers/999999":           "Resource 'provider' with id '999999' could not be found.",
		"/api/v1/services/999999":            "Resource 'service' with id '999999' could not be found.",
		"/api/v1/usages/999999":              "Resource 'usage' with id '999999' could not be found.",
		"/api/v1/invoices/999999":            "Resource 'invoice' with id '999999' could not be found.",
		"/api/v1/budgets/999999":             "Resource 'budget' with id '999999' could not be found.",
		"/api/v1/clients/1001/invoices/7003": "Resource 'invoice' with id '7003' could not be found.",
		"/api/v1/clients/1001/budgets/2":     "Resource 'budget' with id '2' could not be found.",
		"/api/v1/clients/1001/usages/5003":   "Resource 'usage' with id '5003' could not be found.",
		"/api/v1/services/101/usages/5002":   "Resource 'usage' with id '5002' could not be found.",
	}
	for path, msg := range cases {
		rr, env := do(t, h, http.MethodGet, path, "")
		expectError(t, rr, env, http.StatusNotFound, "resource_not_found")
		if env.Error.Message != msg {
			t.Fatalf("%s: message %q", path, env.Error.Message)
		}
	}
}

func TestGet_ItemMeta(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/services/101", "")
	expectStatus(t, rr, http.StatusOK)
	if env.Meta.Type != billing.ResourceService || env.Meta.Count != nil {
		t.Fatalf("unexpected meta: %+v", env.Meta)
	}
	if !strings.Contains(string(env.Data), `"service_cost":0.0416`) {
		t.Fatalf("service_cost not emitted as exact number: %s", env.Data)
	}

	rr, env = do(t, h, http.MethodGet, "/api/v1/clients/1002/usages/5003", "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(string(env.Data), `"usage_date":"2026-01-20"`) || !strings.Contains(string(env.Data), `"usage_time":"12:00:00"`) {
		t.Fatalf("unexpected usage encoding: %s", env.Data)
	}
}

func TestScoped_ReferentialGapIsReported(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/services/9999/usages", "")
	expectStatus(t, rr, http.StatusOK)
	got := rows(t, env)
	if len(got) != 1 || got[0].UsageID != 5006 {
		t.Fatalf("expected dangling usage 5006, got %+v", got)
	}
}

func TestRouting_UnknownAndMethod(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodGet, "/api/v1/nope", "")
	expectError(t, rr, env, http.StatusNotFound, "not_found")

	rr, env = do(t, h, http.MethodGet, "/api/v1/clients/abc", "")
	expectError(t, rr, env, http.StatusNotFound, "not_found")

	rr, env = do(t, h, http.MethodDelete, "/api/v1/budgets/1", "")
	expectError(t, rr, env, http.StatusMethodNotAllowed, "method_not_allowed")

	rr, env = do(t, h, http.MethodPost, "/api/v1/clients", "{}")
	expectError(t, rr, env, http.StatusMethodNotAllowed, "method_not_allowed")
}

func TestPatchBudget_UnknownFieldLeavesRowUnchanged(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/1", `{"alert_enabled": false, "not_a_field": 1}`)
	expectError(t, rr, env, http.StatusBadRequest, "bad_request")
	if msgs := env.Error.Details["not_a_field"]; len(msgs) != 1 || msgs[0] != "Unknown field." {
		t.Fatalf("unexpected details: %v", env.Error.Details)
	}

	rr, env = do(t, h, http.MethodGet, "/api/v1/budgets/1", "")
	expectStatus(t, rr, http.StatusOK)
	b := decodeBudget(t, env)
	if b.BudgetAmount.String() != "5000.00" || !b.AlertEnabled {
		t.Fatalf("budget changed after rejected patch: %+v", b)
	}
}

func TestPatchBudget_EmptyIsIdempotent(t *testing.T) {
	_, h := setup(t)
	_, before := do(t, h, http.MethodGet, "/api/v1/budgets/2", "")
	for i := 0; i < 2; i++ {
		rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/2", `{}`)
		expectStatus(t, rr, http.StatusOK)
		if env.Meta.Type != billing.ResourceBudget {
			t.Fatalf("expected meta.type=budget, got %q", env.Meta.Type)
		}
		if string(env.Data) != string(before.Data) {
			t.Fatalf("empty patch changed budget:\nbefore=%s\nafter=%s", before.Data, env.Data)
		}
	}
}

func TestPatchBudget_ExactDecimal(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/3", `{"budget_amount": "123.45", "alert_threshold": 75.125, "alert_enabled": true}`)
	expectStatus(t, rr, http.StatusOK)
	b := decodeBudget(t, env)
	if b.BudgetAmount.String() != "123.45" || b.AlertThreshold.String() != "75.125" || !b.AlertEnabled {
		t.Fatalf("patch response mismatch: %+v", b)
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/budgets/3", "")
	b = decodeBudget(t, env)
	if b.BudgetAmount.String() != "123.45" {
		t.Fatalf("expected budget_amount 123.45, got %s", b.BudgetAmount)
	}
	if b.MonthlyLimit.String() != "2500.00" {
		t.Fatalf("unpatched monthly_limit changed: %s", b.MonthlyLimit)
	}
	if b.ClientID != 1003 || b.CreatedDate != "2026-01-01T00:00:00" {
		t.Fatalf("immutable fields changed: %+v", b)
	}
}

func TestPatchBudget_InvalidValues(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/1", `{"alert_enabled": "yes", "monthly_limit": "lots", "budget_amount": null}`)
	expectError(t, rr, env, http.StatusBadRequest, "bad_request")
	want := map[string]string{
		"alert_enabled": "Not a valid boolean.",
		"monthly_limit": "monthly_limit must be a number or numeric string",
		"budget_amount": "budget_amount must be a number or numeric string",
	}
	for field, msg := range want {
		if msgs := env.Error.Details[field]; len(msgs) != 1 || msgs[0] != msg {
			t.Fatalf("details[%s]=%v", field, env.Error.Details[field])
		}
	}

	for _, body := range []string{"", "[]", "not json", `{"budget_amount": 1`} {
		rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/1", body)
		expectError(t, rr, env, http.StatusBadRequest, "bad_request")
		if env.Error.Message != "Request body must be a JSON object." {
			t.Fatalf("body %q: message %q", body, env.Error.Message)
		}
	}
}

func TestPatchBudget_TooManyDigitsRejected(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/1", `{"budget_amount": "0.12345678901234567890123"}`)
	expectError(t, rr, env, http.StatusBadRequest, "bad_request")
	if msgs := env.Error.Details["budget_amount"]; len(msgs) != 1 || msgs[0] != "budget_amount must be a number or numeric string" {
		t.Fatalf("unexpected details: %v", env.Error.Details)
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/budgets/1", "")
	if b := decodeBudget(t, env); b.BudgetAmount.String() != "5000.00" {
		t.Fatalf("budget changed after rejected patch: %s", b.BudgetAmount)
	}
}

func TestPatchBudget_NotFound(t *testing.T) {
	_, h := setup(t)
	rr, env := do(t, h, http.MethodPatch, "/api/v1/budgets/424242", `{"alert_enabled": false}`)
	expectError(t, rr, env, http.StatusNotFound, "resource_not_found")
	if env.Error.Message != "Resource 'budget' with id '424242' could not be found." {
		t.Fatalf("unexpected message %q", env.Error.Message)
	}
}

func TestClientUsages_DateScenario(t *testing.T) {
	store := memory.New()
	created := billing.TimestampOf(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	day := billing.NewDate(2026, time.January, 15)
	store.SeedClient(billing.Client{ID: 1001, Name: "Acme", CreatedDate: &created})
	store.SeedProvider(billing.Provider{ID: 1, Name: "AWS"})
	store.SeedService(billing.Service{ID: 10, Name: "EC2", Type: "Compute", UnitCost: billing.MustDecimal("0.10"), ProviderID: 1, Unit: "hour"})
	store.SeedUsage(billing.Usage{ID: 1, ClientID: 1001, ServiceID: 10, UsageDate: &day, UnitsUsed: billing.MustDecimal("420"), TotalCost: billing.MustDecimal("42.00")})
	h := New(store, testLogger(), Config{}).Handler()

	rr, env := do(t, h, http.MethodGet, "/api/v1/clients/1001/usages?start_date=2026-01-01&end_date=2026-01-31", "")
	expectStatus(t, rr, http.StatusOK)
	var items []struct {
		TotalCost json.Number `json:"total_cost"`
	}
	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].TotalCost.String() != "42.00" {
		t.Fatalf("expected one usage with total_cost 42.00, got %s", env.Data)
	}

	rr, env = do(t, h, http.MethodGet, "/api/v1/clients/1001/usages?start_date=2026-02-01", "")
	expectStatus(t, rr, http.StatusOK)
	if env.Meta.Count == nil || *env.Meta.Count != 0 || strings.TrimSpace(string(env.Data)) != "[]" {
		t.Fatalf("expected empty list, got count=%v data=%s", env.Meta.Count, env.Data)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	_, h := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestCORS(t *testing.T) {
	store := memory.New()
	h := New(store, testLogger(), Config{AllowedOrigins: []string{"https://app.example"}}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/budgets/1", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code < 200 || rr.Code > 299 {
		t.Fatalf("expected 2xx preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPatch) {
		t.Fatalf("expected PATCH in allow-methods, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://app.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("allowed origin missing CORS header: %d %v", rr.Code, rr.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("disallowed origin got CORS headers: %v", rr.Header())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := setup(t)
	do(t, h, http.MethodGet, "/api/v1/clients", "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `costapi_http_requests_total{method="GET",route="/api/v1/clients",status="200"}`) {
		t.Fatalf("request counter missing from metrics output")
	}
}
