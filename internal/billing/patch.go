package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/tinoosan/costapi/internal/errs"
)

// Body error messages.
const (
	MsgBodyNotObject = "Request body must be a JSON object."
	MsgInvalidBody   = "Invalid request body."
	MsgUnknownField  = "Unknown field."
	MsgNotBoolean    = "Not a valid boolean."
	MsgNotNumeric    = " must be a number or numeric string"
)

// BudgetPatch is a partial budget update. Nil fields are left unchanged.
type BudgetPatch struct {
	AlertEnabled   *bool
	AlertThreshold *Decimal
	BudgetAmount   *Decimal
	MonthlyLimit   *Decimal
}

// Empty reports whether the patch changes nothing.
func (p BudgetPatch) Empty() bool {
	return p.AlertEnabled == nil && p.AlertThreshold == nil && p.BudgetAmount == nil && p.MonthlyLimit == nil
}

// Apply returns b with the patched fields replaced.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.AlertEnabled != nil {
		b.AlertEnabled = *p.AlertEnabled
	}
	if p.AlertThreshold != nil {
		b.AlertThreshold = *p.AlertThreshold
	}
	if p.BudgetAmount != nil {
		b.BudgetAmount = *p.BudgetAmount
	}
	if p.MonthlyLimit != nil {
		b.MonthlyLimit = *p.MonthlyLimit
	}
	return b
}

// DecodeBudgetPatch validates a PATCH /budgets/{id} body.
//
// Keys are read in document order and the first unknown key rejects the
// whole body. Value errors on known keys are collected and reported together.
func DecodeBudgetPatch(body []byte) (BudgetPatch, error) {
	var p BudgetPatch
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' || !json.Valid(body) {
		return p, &errs.ValidationError{Message: MsgBodyNotObject}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return p, &errs.ValidationError{Message: MsgBodyNotObject}
	}
	verr := &errs.ValidationError{Message: MsgInvalidBody}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return BudgetPatch{}, &errs.ValidationError{Message: MsgBodyNotObject}
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return BudgetPatch{}, &errs.ValidationError{Message: MsgBodyNotObject}
		}
		switch key {
		case "alert_enabled":
			var v bool
			if err := decodeBool(raw, &v); err != nil {
				verr.Add(key, MsgNotBoolean)
				continue
			}
			p.AlertEnabled = &v
		case "alert_threshold":
			p.AlertThreshold = decodeDecimal(verr, key, raw)
		case "budget_amount":
			p.BudgetAmount = decodeDecimal(verr, key, raw)
		case "monthly_limit":
			p.MonthlyLimit = decodeDecimal(verr, key, raw)
		default:
			return BudgetPatch{}, errs.Invalid(MsgInvalidBody, key, MsgUnknownField)
		}
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return BudgetPatch{}, &errs.ValidationError{Message: MsgBodyNotObject}
	}
	if verr.HasFields() {
		return BudgetPatch{}, verr
	}
	return p, nil
}

func decodeBool(raw json.RawMessage, v *bool) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != 't' && raw[0] != 'f') {
		return errs.ErrInvalid
	}
	return json.Unmarshal(raw, v)
}

func decodeDecimal(verr *errs.ValidationError, key string, raw json.RawMessage) *Decimal {
	var d Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		verr.Add(key, key+MsgNotNumeric)
		return nil
	}
	return &d
}
