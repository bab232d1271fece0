package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagos/internal/auth"
	"pagos/internal/core"
	applog "pagos/internal/log"
	"pagos/internal/payments"
	"pagos/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	svc := payments.NewService(mem, nil)
	authn, err := auth.ParseStaticTokens("token-ana:ana,token-luis:luis")
	if err != nil {
		t.Fatalf("parse tokens: %v", err)
	}
	logger := applog.New(applog.Config{
		Component: applog.ComponentHTTP,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
	return NewServer(":0", svc, authn, logger), mem
}

func doRequest(srv *Server, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func createPayment(t *testing.T, srv *Server, token, body string) core.Payment {
	t.Helper()
	rr := doRequest(srv, http.MethodPost, "/payments", token, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	var p core.Payment
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode created payment: %v", err)
	}
	return p
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doRequest(srv, http.MethodGet, path, "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestUnauthenticatedRequestsProduceNoStateChange(t *testing.T) {
	srv, mem := newTestServer(t)

	cases := []struct {
		method, target, body string
	}{
		{http.MethodGet, "/payments", ""},
		{http.MethodPost, "/payments", `{"amount":100,"status":"pending","method":"efectivo","type":"gasto","description":"cafe","category":"alimentacion"}`},
		{http.MethodPut, "/payments", `{"id":"TRX-1","amount":5}`},
		{http.MethodDelete, "/payments?id=TRX-1", ""},
		{http.MethodGet, "/payments/stats", ""},
	}
	for _, tc := range cases {
		rr := doRequest(srv, tc.method, tc.target, "", tc.body)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status=%d, want 401", tc.method, tc.target, rr.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if resp["error"] == "" {
			t.Fatalf("%s %s: missing error message", tc.method, tc.target)
		}
	}

	stored, err := mem.Load(context.Background(), "ana")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("unauthenticated calls changed state: %d records", len(stored))
	}
}

func TestCreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createPayment(t, srv, "token-ana",
		`{"amount":25000,"status":"completed","method":"nequi","type":"gasto","description":"Almuerzo ejecutivo","category":"alimentacion"}`)

	if !strings.HasPrefix(p.ID, "TRX-") {
		t.Fatalf("id = %q", p.ID)
	}
	if p.Currency != core.Currency {
		t.Fatalf("currency = %q", p.Currency)
	}
	if p.CompletedAt == nil {
		t.Fatal("completed payment missing completedAt")
	}

	rr := doRequest(srv, http.MethodGet, "/payments", "token-ana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	var list []core.Payment
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestListEmptyCollectionReturnsEmptyArray(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/payments", "token-ana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("empty list body = %q", got)
	}
}

func TestListFilters(t *testing.T) {
	srv, _ := newTestServer(t)

	createPayment(t, srv, "token-ana",
		`{"amount":25000,"status":"completed","method":"nequi","type":"gasto","description":"Almuerzo","category":"alimentacion"}`)
	createPayment(t, srv, "token-ana",
		`{"amount":900000,"status":"completed","method":"transferencia","type":"ingreso","description":"Salario","category":"otro"}`)
	createPayment(t, srv, "token-ana",
		`{"amount":60000,"status":"pending","method":"efectivo","type":"gasto","description":"Internet","category":"servicios"}`)

	rr := doRequest(srv, http.MethodGet, "/payments?status=completed&type=gasto", "token-ana", "")
	var list []core.Payment
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Description != "Almuerzo" {
		t.Fatalf("filtered list: %+v", list)
	}

	rr = doRequest(srv, http.MethodGet, "/payments?search=ALMUERZO", "token-ana", "")
	list = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Description != "Almuerzo" {
		t.Fatalf("search list: %+v", list)
	}
}

func TestCreateValidationRejected(t *testing.T) {
	srv, mem := newTestServer(t)

	cases := []string{
		`{"amount":-5,"status":"pending","method":"efectivo","type":"gasto","description":"x","category":"otro"}`,
		`{"amount":5,"status":"pending","method":"efectivo","type":"gasto","description":"","category":"otro"}`,
		`{"amount":5,"status":"paid","method":"efectivo","type":"gasto","description":"x","category":"otro"}`,
		`not json`,
	}
	for _, body := range cases {
		rr := doRequest(srv, http.MethodPost, "/payments", "token-ana", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status=%d, want 400", body, rr.Code)
		}
	}

	stored, _ := mem.Load(context.Background(), "ana")
	if len(stored) != 0 {
		t.Fatalf("invalid creates persisted %d records", len(stored))
	}
}

func TestUpdatePayment(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createPayment(t, srv, "token-ana",
		`{"amount":60000,"status":"pending","method":"efectivo","type":"gasto","description":"Internet","category":"servicios"}`)

	rr := doRequest(srv, http.MethodPut, "/payments", "token-ana",
		`{"id":"`+p.ID+`","status":"completed","notes":"pagado en linea"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rr.Code, rr.Body.String())
	}
	var updated core.Payment
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Status != core.StatusCompleted {
		t.Fatalf("status = %q", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completedAt not stamped on completion")
	}
	if updated.Notes != "pagado en linea" {
		t.Fatalf("notes = %q", updated.Notes)
	}
	// Untouched fields survive the partial update.
	if updated.Amount != 60000 || updated.Description != "Internet" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	srv, mem := newTestServer(t)

	createPayment(t, srv, "token-ana",
		`{"amount":100,"status":"pending","method":"efectivo","type":"gasto","description":"cafe","category":"alimentacion"}`)

	before, _ := mem.Load(context.Background(), "ana")
	rr := doRequest(srv, http.MethodPut, "/payments", "token-ana", `{"id":"TRX-nope","amount":5}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("update unknown id status=%d, want 404", rr.Code)
	}
	after, _ := mem.Load(context.Background(), "ana")
	if len(after) != len(before) || after[0].Amount != before[0].Amount {
		t.Fatal("not-found update changed state")
	}
}

func TestDeletePayment(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createPayment(t, srv, "token-ana",
		`{"amount":100,"status":"pending","method":"efectivo","type":"gasto","description":"cafe","category":"alimentacion"}`)

	rr := doRequest(srv, http.MethodDelete, "/payments?id="+p.ID, "token-ana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rr.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("delete response = %s", rr.Body.String())
	}

	// Deleting the same id again is still a success.
	rr = doRequest(srv, http.MethodDelete, "/payments?id="+p.ID, "token-ana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("repeat delete status=%d", rr.Code)
	}
}

func TestDeleteMissingIDReturnsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(srv, http.MethodDelete, "/payments", "token-ana", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("delete without id status=%d, want 400", rr.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	createPayment(t, srv, "token-ana",
		`{"amount":100,"status":"completed","method":"transferencia","type":"ingreso","description":"Pago","category":"otro"}`)
	createPayment(t, srv, "token-ana",
		`{"amount":40,"status":"completed","method":"efectivo","type":"gasto","description":"Mercado","category":"alimentacion"}`)
	createPayment(t, srv, "token-ana",
		`{"amount":15,"status":"pending","method":"efectivo","type":"gasto","description":"Bus","category":"transporte"}`)

	rr := doRequest(srv, http.MethodGet, "/payments/stats", "token-ana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("stats status=%d", rr.Code)
	}
	var stats core.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalIncome != 100 || stats.TotalExpense != 40 || stats.Balance != 60 ||
		stats.PendingAmount != 15 || stats.CompletedCount != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	srv, _ := newTestServer(t)

	createPayment(t, srv, "token-ana",
		`{"amount":100,"status":"pending","method":"efectivo","type":"gasto","description":"cafe","category":"alimentacion"}`)

	rr := doRequest(srv, http.MethodGet, "/payments", "token-luis", "")
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("luis sees ana's records: %s", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(srv, http.MethodPatch, "/payments", "token-ana", "{}")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH status=%d, want 405", rr.Code)
	}
}
