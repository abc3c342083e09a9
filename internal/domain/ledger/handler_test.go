package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

type mockPatients struct {
	known map[int64]bool
}

func (m *mockPatients) GetByID(_ context.Context, id int64) (*identity.Patient, error) {
	if !m.known[id] {
		return nil, httperr.NotFound("patient")
	}
	return &identity.Patient{ID: id}, nil
}

func newTestHandler() *Handler {
	svc, _ := newTestService()
	return NewHandler(svc, &mockPatients{known: map[int64]bool{5: true}})
}

func balanceRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetLedgerCreatesOnFirstRead(t *testing.T) {
	h := newTestHandler()

	c, rec := balanceRequest("/api/doctor/balance/5")
	c.SetParamNames("patientId")
	c.SetParamValues("5")
	if err := h.GetLedger(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var l Ledger
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l.PatientID != 5 {
		t.Errorf("patient id = %d, want 5", l.PatientID)
	}
	if l.TotalFee != DefaultTotalFee {
		t.Errorf("total fee = %d, want %d", l.TotalFee, DefaultTotalFee)
	}
	if l.CreditBalance != 0 {
		t.Errorf("balance = %d, want 0", l.CreditBalance)
	}
}

func TestGetLedgerInvalidID(t *testing.T) {
	h := newTestHandler()

	c, _ := balanceRequest("/api/doctor/balance/abc")
	c.SetParamNames("patientId")
	c.SetParamValues("abc")
	err := h.GetLedger(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAdjustHandler(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/balance/5/adjust?amount=500&expiry=2026-03-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("5")
	if err := h.Adjust(c); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	var l Ledger
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l.CreditBalance != 500 {
		t.Errorf("balance = %d, want 500", l.CreditBalance)
	}
	if l.CreditExpiryDate == nil || l.CreditExpiryDate.Format("2006-01-02") != "2026-03-01" {
		t.Errorf("expiry = %v, want 2026-03-01", l.CreditExpiryDate)
	}
}

func TestAdjustHandlerBadAmount(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/balance/5/adjust?amount=lots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("5")
	err := h.Adjust(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGetLedgerUnknownPatient(t *testing.T) {
	h := newTestHandler()

	c, _ := balanceRequest("/api/doctor/balance/999")
	c.SetParamNames("patientId")
	c.SetParamValues("999")
	err := h.GetLedger(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %v", err)
	}
}

func TestAdjustUnknownPatient(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/balance/999/adjust?amount=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("999")
	err := h.Adjust(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %v", err)
	}
}
