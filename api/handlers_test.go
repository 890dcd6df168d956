/*
handlers_test.go - Unit tests for API handlers

Tests for:
- The predict-then-append flow (CreateRecord)
- Status freshness on reads
- Positional delete over HTTP
- CSV export headers and contents
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/predict"
	"github.com/warp/tenancy-engine/schedule"
	"github.com/warp/tenancy-engine/store"
	"github.com/warp/tenancy-engine/tenancy"
)

// stubPredictor returns a fixed rent, or the missing-artifact error.
type stubPredictor struct {
	rent    decimal.Decimal
	missing bool
}

func (p stubPredictor) Predict(predict.Features) (decimal.Decimal, error) {
	if p.missing {
		return decimal.Zero, predict.ErrModelArtifactMissing
	}
	return p.rent, nil
}

func newTestServer(t *testing.T, p predict.Predictor, today schedule.Date) (*httptest.Server, *tenancy.RecordStore) {
	t.Helper()
	s := tenancy.NewRecordStore(store.NewMemory())
	if err := s.LoadHistory(context.Background()); err != nil {
		t.Fatalf("load history: %v", err)
	}

	h := NewHandler(s, p, schedule.FixedClock{Day: today})
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, s
}

func validCreateBody() map[string]any {
	return map[string]any{
		"bhk":                   2,
		"size":                  950,
		"bathroom":              2,
		"furnishing_status":     "Semi-Furnished",
		"tenant_preferred":      "Family",
		"city":                  "Mumbai",
		"point_of_contact":      "Contact Owner",
		"area_locality":         "Andheri West",
		"posted_on":             "2024-05-01",
		"area_type":             "Super Area",
		"floor":                 "5 out of 10",
		"tenant_name":           "Asha",
		"telephone_number":      "98200 00000",
		"previous_payment_date": "2024-05-01",
		"payment_frequency":     "monthly",
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCreateRecord_PredictsAndAppends(t *testing.T) {
	// GIVEN: today = 2024-06-10, paid 2024-05-01, monthly frequency
	// WHEN: A record is created
	// THEN: Due 2024-05-31, Overdue, rent from the predictor
	today := schedule.NewDate(2024, time.June, 10)
	srv, s := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var got PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Record.PredictedRent != "28000" {
		t.Errorf("expected rent 28000, got %s", got.Record.PredictedRent)
	}
	if got.Record.NextPaymentDueDate != "2024-05-31" {
		t.Errorf("expected due 2024-05-31, got %s", got.Record.NextPaymentDueDate)
	}
	if got.Record.PaymentStatus != string(schedule.StatusOverdue) {
		t.Errorf("expected Overdue, got %s", got.Record.PaymentStatus)
	}
	if got.Assessment != string(tenancy.AssessmentOnTrack) {
		t.Errorf("28000 should be on track, got %s", got.Assessment)
	}
	if s.Len() != 1 {
		t.Errorf("record not appended")
	}
}

func TestCreateRecord_HighRentFlagged(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, _ := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(95000)}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	defer resp.Body.Close()

	var got PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Assessment != string(tenancy.AssessmentAtRisk) {
		t.Errorf("95000 should be at risk, got %s", got.Assessment)
	}
}

func TestCreateRecord_ValidationRejected(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, s := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	body := validCreateBody()
	body["bhk"] = 11

	resp := postJSON(t, srv.URL+"/api/records", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if s.Len() != 0 {
		t.Error("invalid request must not append")
	}
}

func TestCreateRecord_ModelMissingHaltsFlow(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, s := newTestServer(t, stubPredictor{missing: true}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	if s.Len() != 0 {
		t.Error("no record without a prediction")
	}
}

func TestListRecords_StatusFresh(t *testing.T) {
	// Status is classified against the handler's clock, not whatever
	// was stored at append time.
	today := schedule.NewDate(2024, time.June, 10)
	srv, s := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	stale := tenancy.Record{
		PredictedRent:      decimal.NewFromInt(28000),
		NextPaymentDueDate: schedule.NewDate(2024, time.June, 12),
		PaymentStatus:      schedule.StatusUpcoming, // wrong on purpose
	}
	if err := s.Append(context.Background(), stale); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/records")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []RecordDTO
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].PaymentStatus != string(schedule.StatusDueSoon) {
		t.Errorf("expected recomputed Due Soon, got %s", got[0].PaymentStatus)
	}
}

func TestDeleteRecord(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, s := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/records/0", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if s.Len() != 0 {
		t.Error("record should be deleted")
	}

	// Second delete against the now-empty store: reported, not ignored.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/records/0", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for stale index, got %d", resp.StatusCode)
	}
}

func TestDeleteRecord_NonNumericIndex(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, _ := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/records/abc", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExportRecords_CSV(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, _ := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/records/export")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "tenant_data_") {
		t.Errorf("expected timestamped filename, got %s", cd)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(tenancy.Columns(), ",") {
		t.Errorf("header mismatch: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Overdue") {
		t.Errorf("export should carry the recomputed status: %s", lines[1])
	}
}

func TestGetSummary(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, _ := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(95000)}, today)

	resp := postJSON(t, srv.URL+"/api/records", validCreateBody())
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/records/summary")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 1 {
		t.Errorf("expected total 1, got %d", got.Total)
	}
	if got.ByStatus[string(schedule.StatusOverdue)] != 1 {
		t.Errorf("expected 1 overdue, got %+v", got.ByStatus)
	}
	if got.AtRisk != 1 {
		t.Errorf("95000 rent should count at risk, got %d", got.AtRisk)
	}
}

func TestGetDistribution_BadBins(t *testing.T) {
	today := schedule.NewDate(2024, time.June, 10)
	srv, _ := newTestServer(t, stubPredictor{rent: decimal.NewFromInt(28000)}, today)

	resp, err := http.Get(srv.URL + "/api/records/distribution?bins=0")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
