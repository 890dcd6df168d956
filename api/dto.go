/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - tenancy/types.go: Domain model these map from
*/
package api

import (
	"github.com/warp/tenancy-engine/tenancy"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CreateRecordRequest carries the raw field values for a prediction.
// Tenant fields are optional; missing dates coerce to absent.
type CreateRecordRequest struct {
	BHK              int     `json:"bhk"`
	Size             float64 `json:"size"`
	Bathroom         int     `json:"bathroom"`
	FurnishingStatus string  `json:"furnishing_status"`
	TenantPreferred  string  `json:"tenant_preferred"`
	City             string  `json:"city"`
	PointOfContact   string  `json:"point_of_contact"`
	AreaLocality     string  `json:"area_locality"`
	PostedOn         string  `json:"posted_on"`
	AreaType         string  `json:"area_type"`
	Floor            string  `json:"floor"`

	TenantName          string `json:"tenant_name,omitempty"`
	TelephoneNumber     string `json:"telephone_number,omitempty"`
	PreviousPaymentDate string `json:"previous_payment_date,omitempty"`

	// PaymentFrequency: "monthly" (30 days), "quarterly" (90 days) or
	// "custom" with CustomFrequencyDays set. Defaults to monthly.
	PaymentFrequency    string `json:"payment_frequency,omitempty"`
	CustomFrequencyDays int    `json:"custom_frequency_days,omitempty"`
}

// RecordDTO represents one history row in API responses. Index is the
// positional address used by delete - valid only until the next
// mutation.
type RecordDTO struct {
	Index            int     `json:"index"`
	ID               string  `json:"id"`
	BHK              int     `json:"bhk"`
	Size             float64 `json:"size"`
	Bathroom         int     `json:"bathroom"`
	FurnishingStatus string  `json:"furnishing_status"`
	TenantPreferred  string  `json:"tenant_preferred"`
	City             string  `json:"city"`
	PointOfContact   string  `json:"point_of_contact"`
	AreaLocality     string  `json:"area_locality"`
	PostedOn         string  `json:"posted_on"`
	AreaType         string  `json:"area_type"`
	Floor            string  `json:"floor"`
	PredictedRent    string  `json:"predicted_rent"`

	TenantName          string `json:"tenant_name,omitempty"`
	TelephoneNumber     string `json:"telephone_number,omitempty"`
	PreviousPaymentDate string `json:"previous_payment_date,omitempty"`
	NextPaymentDueDate  string `json:"next_payment_due_date,omitempty"`
	PaymentStatus       string `json:"payment_status"`
}

// PredictResponse wraps a freshly created record with its affordability
// assessment.
type PredictResponse struct {
	Record     RecordDTO `json:"record"`
	Assessment string    `json:"assessment"`
}

// SummaryResponse is the dashboard rollup.
type SummaryResponse struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	AtRisk    int            `json:"at_risk"`
	Threshold string         `json:"rent_threshold"`
}

// TenantSummaryDTO is the condensed management view.
type TenantSummaryDTO struct {
	TenantName          string `json:"tenant_name"`
	TelephoneNumber     string `json:"telephone_number"`
	City                string `json:"city"`
	AreaLocality        string `json:"area_locality"`
	PredictedRent       string `json:"predicted_rent"`
	PreviousPaymentDate string `json:"previous_payment_date,omitempty"`
	NextPaymentDueDate  string `json:"next_payment_due_date,omitempty"`
	PaymentStatus       string `json:"payment_status"`
}

// RentBucketDTO is one histogram bucket.
type RentBucketDTO struct {
	Low   string `json:"low"`
	High  string `json:"high"`
	Count int    `json:"count"`
}

// DeleteResponse confirms a positional delete.
type DeleteResponse struct {
	Deleted   int `json:"deleted"`
	Remaining int `json:"remaining"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toRecordDTO(index int, rec tenancy.Record) RecordDTO {
	return RecordDTO{
		Index:            index,
		ID:               string(rec.ID),
		BHK:              rec.BHK,
		Size:             rec.Size,
		Bathroom:         rec.Bathroom,
		FurnishingStatus: string(rec.Furnishing),
		TenantPreferred:  string(rec.TenantPreferred),
		City:             rec.City,
		PointOfContact:   string(rec.PointOfContact),
		AreaLocality:     rec.AreaLocality,
		PostedOn:         rec.PostedOn.String(),
		AreaType:         string(rec.AreaType),
		Floor:            rec.Floor,
		PredictedRent:    rec.PredictedRent.String(),

		TenantName:          rec.TenantName,
		TelephoneNumber:     rec.TelephoneNumber,
		PreviousPaymentDate: rec.PreviousPaymentDate.String(),
		NextPaymentDueDate:  rec.NextPaymentDueDate.String(),
		PaymentStatus:       string(rec.PaymentStatus),
	}
}

func toRecordDTOs(records []tenancy.Record) []RecordDTO {
	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRecordDTO(i, rec)
	}
	return dtos
}

func toTenantSummaryDTOs(summaries []tenancy.TenantSummary) []TenantSummaryDTO {
	dtos := make([]TenantSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = TenantSummaryDTO{
			TenantName:          s.TenantName,
			TelephoneNumber:     s.TelephoneNumber,
			City:                s.City,
			AreaLocality:        s.AreaLocality,
			PredictedRent:       s.PredictedRent.String(),
			PreviousPaymentDate: s.PreviousPaymentDate.String(),
			NextPaymentDueDate:  s.NextPaymentDueDate.String(),
			PaymentStatus:       string(s.PaymentStatus),
		}
	}
	return dtos
}

func toRentBucketDTOs(buckets []tenancy.RentBucket) []RentBucketDTO {
	dtos := make([]RentBucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = RentBucketDTO{Low: b.Low.String(), High: b.High.String(), Count: b.Count}
	}
	return dtos
}
