package v1

import (
	"encoding/json"
	"net/http"
)

const statusOK, statusError = "ok", "error"

// okEnvelope is the success shape: {"status":"ok","data"?:…,"meta"?:…}.
type okEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

type listMeta struct {
	Count int    `json:"count"`
	Type  string `json:"type"`
}

type itemMeta struct {
	Type string `json:"type"`
}

// errorEnvelope is the failure shape: {"status":"error","error":{…}}.
type errorEnvelope struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeOK writes a success envelope; nil data or meta are omitted.
func writeOK(w http.ResponseWriter, data, meta any) {
	toJSON(w, http.StatusOK, okEnvelope{Status: statusOK, Data: data, Meta: meta})
}

// writeList writes a list with meta.count and meta.type. A nil slice is sent as [].
func writeList[T any](w http.ResponseWriter, resource string, items []T) {
	if items == nil {
		items = []T{}
	}
	writeOK(w, items, listMeta{Count: len(items), Type: resource})
}

// writeItem writes a single resource with meta.type.
func writeItem(w http.ResponseWriter, resource string, item any) {
	writeOK(w, item, itemMeta{Type: resource})
}
