/*
Package tenancy provides the tenant record model and the record store.

PURPOSE:
  This package owns the domain data: one Record per rent prediction,
  with tenant contact details and payment schedule, and the RecordStore
  that mediates every append, delete, and query. Payment status is a
  derived view recomputed against "today" on every read - storage never
  freezes it as ground truth.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: One tenant/property/prediction row
  - Enums: FurnishingStatus, TenantPreference, ContactPoint, AreaType
  - Columns: The persisted column layout (the one bit-exact contract)

DESIGN PRINCIPLES:
  1. Precision: PredictedRent uses decimal.Decimal, never float money
  2. Leniency: Absent or malformed optional fields coerce to empty,
     they never reject a record
  3. Stable IDs: Every record carries a generated ID for export and
     audit, even though deletion stays positional

SEE ALSO:
  - store.go: RecordStore operations
  - codec.go: Row serialization against the Columns contract
*/
package tenancy

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/schedule"
)

// =============================================================================
// ENUMS
// =============================================================================

type FurnishingStatus string

const (
	Unfurnished   FurnishingStatus = "Unfurnished"
	SemiFurnished FurnishingStatus = "Semi-Furnished"
	Furnished     FurnishingStatus = "Furnished"
)

type TenantPreference string

const (
	PrefersBachelors       TenantPreference = "Bachelors"
	PrefersFamily          TenantPreference = "Family"
	PrefersBachelorsFamily TenantPreference = "Bachelors/Family"
)

type ContactPoint string

const (
	ContactOwner   ContactPoint = "Contact Owner"
	ContactAgent   ContactPoint = "Contact Agent"
	ContactBuilder ContactPoint = "Contact Builder"
)

type AreaType string

const (
	SuperArea  AreaType = "Super Area"
	CarpetArea AreaType = "Carpet Area"
	BuiltArea  AreaType = "Built Area"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// RecordID is a stable identifier generated at append time. Deletion is
// positional (matching the source semantics), but exports and audit
// trails key on this instead of a shifting index.
type RecordID string

func NewRecordID() RecordID { return RecordID(uuid.NewString()) }

// =============================================================================
// RECORD - One tenant/property/prediction row
// =============================================================================

// Record is one row of the prediction history.
//
// PaymentStatus is derived: two reads at different "todays" may
// legitimately disagree. Every read path goes through
// RecordStore.RecomputeStatuses before the field is meaningful.
type Record struct {
	ID RecordID

	// Property features (model inputs)
	BHK             int
	Size            float64 // square feet
	Bathroom        int
	Furnishing      FurnishingStatus
	TenantPreferred TenantPreference
	City            string
	PointOfContact  ContactPoint
	AreaLocality    string
	PostedOn        schedule.Date
	AreaType        AreaType
	Floor           string // conventionally "<n> out of <m>"

	// Prediction output
	PredictedRent decimal.Decimal

	// Tenant contact and payment schedule (optional)
	TenantName          string
	TelephoneNumber     string
	PreviousPaymentDate schedule.Date
	NextPaymentDueDate  schedule.Date

	// Derived, recomputed on every read
	PaymentStatus schedule.Status
}

// Persisted column names, in order. This layout is the external
// contract: dates as YYYY-MM-DD (empty when absent), numbers as plain
// decimal text.
const (
	ColBHK                 = "BHK"
	ColSize                = "Size"
	ColBathroom            = "Bathroom"
	ColFurnishingStatus    = "Furnishing Status"
	ColTenantPreferred     = "Tenant Preferred"
	ColCity                = "City"
	ColPointOfContact      = "Point of Contact"
	ColAreaLocality        = "Area Locality"
	ColPostedOn            = "Posted On"
	ColAreaType            = "Area Type"
	ColFloor               = "Floor"
	ColPredictedRent       = "Predicted Rent"
	ColTenantName          = "Tenant Name"
	ColTelephoneNumber     = "Telephone Number"
	ColPreviousPaymentDate = "Previous Payment Date"
	ColNextPaymentDueDate  = "Next Payment Due Date"
	ColPaymentStatus       = "Payment Status"
)

// Columns returns the persisted column layout in order.
func Columns() []string {
	return []string{
		ColBHK, ColSize, ColBathroom, ColFurnishingStatus, ColTenantPreferred,
		ColCity, ColPointOfContact, ColAreaLocality, ColPostedOn, ColAreaType,
		ColFloor, ColPredictedRent, ColTenantName, ColTelephoneNumber,
		ColPreviousPaymentDate, ColNextPaymentDueDate, ColPaymentStatus,
	}
}

// TenantSummary is the condensed management view: contact details plus
// the payment schedule, without the property features.
type TenantSummary struct {
	TenantName          string
	TelephoneNumber     string
	City                string
	AreaLocality        string
	PredictedRent       decimal.Decimal
	PreviousPaymentDate schedule.Date
	NextPaymentDueDate  schedule.Date
	PaymentStatus       schedule.Status
}
