/*
handlers.go - HTTP API handlers for the tenancy engine

PURPOSE:
  Exposes the prediction and record management flow via REST. Handles
  HTTP request/response, JSON serialization, and delegates to the
  domain logic.

ENDPOINTS:
  Records:
    POST   /api/records               Predict rent and append a record
    GET    /api/records               List records (statuses recomputed)
    DELETE /api/records/{index}       Delete by position
    GET    /api/records/export        Download the history as CSV
    GET    /api/records/summary       Status counts + affordability rollup
    GET    /api/records/tenants       Condensed tenant management view
    GET    /api/records/distribution  Rent histogram buckets

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (predictor, schedule, record store)
  4. Serialize response
  5. Handle errors

STATUS FRESHNESS:
  Every read handler recomputes payment statuses against a fresh
  "today" from the injected clock before touching the records - status
  is derived, never served stale.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid index
  - 500: Flush/internal errors
  - 503: Model artifact unavailable (the prediction flow halts)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/predict"
	"github.com/warp/tenancy-engine/schedule"
	"github.com/warp/tenancy-engine/tenancy"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store         *tenancy.RecordStore
	Predictor     predict.Predictor
	Clock         schedule.Clock
	RentThreshold decimal.Decimal
}

// NewHandler creates a handler with the default rent threshold.
func NewHandler(store *tenancy.RecordStore, predictor predict.Predictor, clock schedule.Clock) *Handler {
	return &Handler{
		Store:         store,
		Predictor:     predictor,
		Clock:         clock,
		RentThreshold: tenancy.DefaultRentThreshold,
	}
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// CreateRecord runs a prediction and appends the resulting record.
// POST /api/records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validateCreateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record fields", err)
		return
	}

	frequency, err := parseFrequency(req.PaymentFrequency, req.CustomFrequencyDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment frequency", err)
		return
	}

	rent, err := h.Predictor.Predict(predict.Features{
		BHK:              req.BHK,
		Size:             req.Size,
		Bathroom:         req.Bathroom,
		Floor:            req.Floor,
		FurnishingStatus: req.FurnishingStatus,
		TenantPreferred:  req.TenantPreferred,
		City:             req.City,
		PointOfContact:   req.PointOfContact,
		AreaLocality:     req.AreaLocality,
		AreaType:         req.AreaType,
	})
	if err != nil {
		if errors.Is(err, predict.ErrModelArtifactMissing) {
			writeError(w, http.StatusServiceUnavailable, "Prediction model unavailable", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Prediction failed", err)
		return
	}

	previousPayment := schedule.ParseDate(req.PreviousPaymentDate)
	dueDate := schedule.NextDueDate(previousPayment, frequency)
	today := h.Clock.Today()

	rec := tenancy.Record{
		BHK:             req.BHK,
		Size:            req.Size,
		Bathroom:        req.Bathroom,
		Furnishing:      tenancy.FurnishingStatus(req.FurnishingStatus),
		TenantPreferred: tenancy.TenantPreference(req.TenantPreferred),
		City:            req.City,
		PointOfContact:  tenancy.ContactPoint(req.PointOfContact),
		AreaLocality:    req.AreaLocality,
		PostedOn:        schedule.ParseDate(req.PostedOn),
		AreaType:        tenancy.AreaType(req.AreaType),
		Floor:           req.Floor,
		PredictedRent:   rent,

		TenantName:          req.TenantName,
		TelephoneNumber:     req.TelephoneNumber,
		PreviousPaymentDate: previousPayment,
		NextPaymentDueDate:  dueDate,
		PaymentStatus:       schedule.Classify(dueDate, today),
	}

	if err := h.Store.Append(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	index := h.Store.Len() - 1
	writeJSON(w, http.StatusCreated, PredictResponse{
		Record:     toRecordDTO(index, rec),
		Assessment: string(tenancy.AssessAffordability(rent, h.RentThreshold)),
	})
}

// ListRecords returns all records with freshly recomputed statuses.
// GET /api/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	h.Store.RecomputeStatuses(h.Clock.Today())
	writeJSON(w, http.StatusOK, toRecordDTOs(h.Store.ExportSnapshot()))
}

// DeleteRecord deletes a record by position.
// DELETE /api/records/{index}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Index must be an integer", err)
		return
	}

	if err := h.Store.DeleteAt(r.Context(), index); err != nil {
		if tenancy.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid record index", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete record", err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: index, Remaining: h.Store.Len()})
}

// ExportRecords downloads the full history as CSV, statuses freshly
// recomputed. Filename matches the original export convention.
// GET /api/records/export
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	h.Store.RecomputeStatuses(h.Clock.Today())
	snapshot := h.Store.ExportSnapshot()

	var buf bytes.Buffer
	if err := tenancy.WriteCSV(&buf, snapshot); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode export", err)
		return
	}

	filename := fmt.Sprintf("tenant_data_%s.csv", time.Now().Format("20060102_1504"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetSummary returns the payment status rollup and affordability count.
// GET /api/records/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.Store.RecomputeStatuses(h.Clock.Today())

	byStatus := make(map[string]int, 5)
	for status, count := range h.Store.SummaryCounts() {
		byStatus[string(status)] = count
	}

	atRisk := 0
	for _, rec := range h.Store.ExportSnapshot() {
		if tenancy.AssessAffordability(rec.PredictedRent, h.RentThreshold) == tenancy.AssessmentAtRisk {
			atRisk++
		}
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Total:     h.Store.Len(),
		ByStatus:  byStatus,
		AtRisk:    atRisk,
		Threshold: h.RentThreshold.String(),
	})
}

// GetTenantSummaries returns the condensed management view.
// GET /api/records/tenants
func (h *Handler) GetTenantSummaries(w http.ResponseWriter, r *http.Request) {
	h.Store.RecomputeStatuses(h.Clock.Today())
	writeJSON(w, http.StatusOK, toTenantSummaryDTOs(h.Store.TenantSummaries()))
}

// GetDistribution returns the rent histogram.
// GET /api/records/distribution?bins=10
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	bins := 10
	if s := r.URL.Query().Get("bins"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "bins must be an integer between 1 and 100", err)
			return
		}
		bins = n
	}

	writeJSON(w, http.StatusOK, toRentBucketDTOs(h.Store.RentDistribution(bins)))
}

// =============================================================================
// VALIDATION
// =============================================================================

func validateCreateRequest(req CreateRecordRequest) error {
	if req.BHK < 1 || req.BHK > 10 {
		return fmt.Errorf("bhk must be between 1 and 10, got %d", req.BHK)
	}
	if req.Size <= 0 {
		return fmt.Errorf("size must be positive, got %v", req.Size)
	}
	if req.Bathroom < 1 || req.Bathroom > 10 {
		return fmt.Errorf("bathroom must be between 1 and 10, got %d", req.Bathroom)
	}

	switch tenancy.FurnishingStatus(req.FurnishingStatus) {
	case tenancy.Unfurnished, tenancy.SemiFurnished, tenancy.Furnished:
	default:
		return fmt.Errorf("unknown furnishing_status %q", req.FurnishingStatus)
	}
	switch tenancy.TenantPreference(req.TenantPreferred) {
	case tenancy.PrefersBachelors, tenancy.PrefersFamily, tenancy.PrefersBachelorsFamily:
	default:
		return fmt.Errorf("unknown tenant_preferred %q", req.TenantPreferred)
	}
	switch tenancy.ContactPoint(req.PointOfContact) {
	case tenancy.ContactOwner, tenancy.ContactAgent, tenancy.ContactBuilder:
	default:
		return fmt.Errorf("unknown point_of_contact %q", req.PointOfContact)
	}
	switch tenancy.AreaType(req.AreaType) {
	case tenancy.SuperArea, tenancy.CarpetArea, tenancy.BuiltArea:
	default:
		return fmt.Errorf("unknown area_type %q", req.AreaType)
	}
	return nil
}

func parseFrequency(name string, customDays int) (schedule.Frequency, error) {
	switch name {
	case "", "monthly":
		return schedule.FrequencyMonthly, nil
	case "quarterly":
		return schedule.FrequencyQuarterly, nil
	case "custom":
		return schedule.CustomFrequency(customDays)
	default:
		return 0, fmt.Errorf("unknown payment_frequency %q (use monthly, quarterly or custom)", name)
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
