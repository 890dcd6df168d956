package predict

import (
	"strconv"
	"strings"
)

// =============================================================================
// FEATURES - Model input record
// =============================================================================

// Feature names used by the model artifact.
const (
	FeatBHK        = "bhk"
	FeatSize       = "size"
	FeatBathroom   = "bathroom"
	FeatFloorLevel = "floor_level"

	FeatFurnishingStatus = "furnishing_status"
	FeatTenantPreferred  = "tenant_preferred"
	FeatCity             = "city"
	FeatPointOfContact   = "point_of_contact"
	FeatAreaLocality     = "area_locality"
	FeatAreaType         = "area_type"
)

// Features carries the raw property fields the model was trained on.
type Features struct {
	BHK      int
	Size     float64
	Bathroom int
	Floor    string // conventionally "<n> out of <m>"

	FurnishingStatus string
	TenantPreferred  string
	City             string
	PointOfContact   string
	AreaLocality     string
	AreaType         string
}

func (f Features) numeric() map[string]float64 {
	return map[string]float64{
		FeatBHK:        float64(f.BHK),
		FeatSize:       f.Size,
		FeatBathroom:   float64(f.Bathroom),
		FeatFloorLevel: floorLevel(f.Floor),
	}
}

func (f Features) categorical() map[string]string {
	return map[string]string{
		FeatFurnishingStatus: f.FurnishingStatus,
		FeatTenantPreferred:  f.TenantPreferred,
		FeatCity:             f.City,
		FeatPointOfContact:   f.PointOfContact,
		FeatAreaLocality:     f.AreaLocality,
		FeatAreaType:         f.AreaType,
	}
}

// floorLevel extracts the leading floor number from a "5 out of 10"
// style string. Ground floor and unparseable values count as zero.
func floorLevel(floor string) float64 {
	fields := strings.Fields(floor)
	if len(fields) == 0 {
		return 0
	}
	if strings.EqualFold(fields[0], "ground") {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return float64(n)
}
