// Package query validates and normalizes list query parameters: paging
// (limit/page or limit/offset), the optional date range, and parent scoping.
package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tinoosan/costapi/internal/billing"
	"github.com/tinoosan/costapi/internal/errs"
)

// Paging bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 50000
	DefaultPage  = 1
)

// MsgInvalidParams is the top-level message of query validation errors.
const MsgInvalidParams = "Invalid query params"

const (
	msgNotInteger = "Not a valid integer."
	msgNotDate    = "Not a valid date."
	msgBadRange   = "start_date must be on or before end_date."
)

// Page is a validated paging window.
type Page struct {
	Limit  int
	Page   int
	Offset int
}

// DefaultPaging is the window used when no paging parameters are given.
func DefaultPaging() Page { return Page{Limit: DefaultLimit, Page: DefaultPage} }

// DateRange holds optional inclusive bounds. Nil means unbounded.
type DateRange struct {
	Start *billing.Date
	End   *billing.Date
}

// Bounded reports whether at least one bound is set.
func (r DateRange) Bounded() bool { return r.Start != nil || r.End != nil }

// Contains reports whether d lies within the range. A nil date only
// matches an unbounded range.
func (r DateRange) Contains(d *billing.Date) bool {
	if !r.Bounded() {
		return true
	}
	if d == nil {
		return false
	}
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// Scope restricts a listing or lookup to a parent resource.
type Scope struct {
	ClientID  *int64
	ServiceID *int64
}

// ByClient scopes to a client.
func ByClient(id int64) Scope { return Scope{ClientID: &id} }

// ByService scopes to a service.
func ByService(id int64) Scope { return Scope{ServiceID: &id} }

// List is the full set of list parameters handed to a store.
type List struct {
	Page  Page
	Range DateRange
	Scope Scope
}

// ParsePage validates limit, page and the optional offset. All failing
// fields are reported in one *errs.ValidationError.
func ParsePage(v url.Values) (Page, error) {
	p := DefaultPaging()
	verr := &errs.ValidationError{Message: MsgInvalidParams}
	offset := -1
	if raw, ok := lookup(v, "limit"); ok {
		n, msg := parseInt(raw, 1, MaxLimit)
		if msg != "" {
			verr.Add("limit", msg)
		} else {
			p.Limit = n
		}
	}
	if raw, ok := lookup(v, "page"); ok {
		n, msg := parseInt(raw, 1, -1)
		if msg != "" {
			verr.Add("page", msg)
		} else {
			p.Page = n
		}
	}
	if raw, ok := lookup(v, "offset"); ok {
		n, msg := parseInt(raw, 0, -1)
		if msg != "" {
			verr.Add("offset", msg)
		} else {
			offset = n
		}
	}
	if verr.HasFields() {
		return Page{}, verr
	}
	if offset >= 0 {
		p.Offset = offset
	} else {
		p.Offset = pageOffset(p.Page, p.Limit)
	}
	return p, nil
}

// pageOffset is (page-1)*limit, saturating at math.MaxInt so that pages far
// past the end stay valid and simply come back empty.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// ParseDateRange validates start_date and end_date (YYYY-MM-DD).
func ParseDateRange(v url.Values) (DateRange, error) {
	var r DateRange
	verr := &errs.ValidationError{Message: MsgInvalidParams}
	for _, f := range []struct {
		name string
		dst  **billing.Date
	}{{"start_date", &r.Start}, {"end_date", &r.End}} {
		raw, ok := lookup(v, f.name)
		if !ok {
			continue
		}
		d, err := billing.ParseDate(strings.TrimSpace(raw))
		if err != nil {
			verr.Add(f.name, msgNotDate)
			continue
		}
		*f.dst = &d
	}
	if verr.HasFields() {
		return DateRange{}, verr
	}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return DateRange{}, errs.Invalid(MsgInvalidParams, "start_date", msgBadRange)
	}
	return r, nil
}

func lookup(v url.Values, key string) (string, bool) {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// parseInt returns the parsed value or a field message. hi < 0 means no upper
// bound, in which case positive values too large for an int saturate.
func parseInt(raw string, lo, hi int) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if hi < 0 && errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			return math.MaxInt, ""
		}
		return 0, msgNotInteger
	}
	if n < lo || (hi >= 0 && n > hi) {
		if hi < 0 {
			return 0, fmt.Sprintf("Must be greater than or equal to %d.", lo)
		}
		return 0, fmt.Sprintf("Must be greater than or equal to %d and less than or equal to %d.", lo, hi)
	}
	return n, ""
}
