/*
codec.go - Row serialization for the persisted column contract

PURPOSE:
  Converts Records to and from the flat row layout defined by
  Columns(). Both the CSV history backend and the export endpoint go
  through these functions, so the on-disk file and the downloaded
  export are byte-compatible.

MIGRATION POLICY:
  Reading is header-driven, not positional. Any contract column missing
  from an existing file is treated as empty text - old 12-column files
  written before tenant tracking load cleanly, and the next flush adds
  the new columns. Unknown extra columns are ignored.

LENIENCY:
  Malformed cells never fail a load: bad dates coerce to absent, bad
  numbers to zero. The persisted Payment Status cell is written for
  human inspection of the file but discarded on read - status is always
  recomputed against a fresh "today".

SEE ALSO:
  - types.go: Columns() definition
  - store/csvfile: File-backed history using this codec
*/
package tenancy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/schedule"
)

// =============================================================================
// ROW ENCODING
// =============================================================================

// Row serializes a record against the Columns() layout.
func (r Record) Row() []string {
	return []string{
		strconv.Itoa(r.BHK),
		formatFloat(r.Size),
		strconv.Itoa(r.Bathroom),
		string(r.Furnishing),
		string(r.TenantPreferred),
		r.City,
		string(r.PointOfContact),
		r.AreaLocality,
		r.PostedOn.String(),
		string(r.AreaType),
		r.Floor,
		r.PredictedRent.String(),
		r.TenantName,
		r.TelephoneNumber,
		r.PreviousPaymentDate.String(),
		r.NextPaymentDueDate.String(),
		string(r.PaymentStatus),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// =============================================================================
// ROW DECODING
// =============================================================================

// rowReader resolves cells by column name, defaulting missing columns
// to empty text (the forward-compatible migration policy).
type rowReader struct {
	index map[string]int
	row   []string
}

func (rr rowReader) cell(col string) string {
	i, ok := rr.index[col]
	if !ok || i >= len(rr.row) {
		return ""
	}
	return rr.row[i]
}

func decodeRecord(rr rowReader) Record {
	return Record{
		BHK:             lenientInt(rr.cell(ColBHK)),
		Size:            lenientFloat(rr.cell(ColSize)),
		Bathroom:        lenientInt(rr.cell(ColBathroom)),
		Furnishing:      FurnishingStatus(rr.cell(ColFurnishingStatus)),
		TenantPreferred: TenantPreference(rr.cell(ColTenantPreferred)),
		City:            rr.cell(ColCity),
		PointOfContact:  ContactPoint(rr.cell(ColPointOfContact)),
		AreaLocality:    rr.cell(ColAreaLocality),
		PostedOn:        schedule.ParseDate(rr.cell(ColPostedOn)),
		AreaType:        AreaType(rr.cell(ColAreaType)),
		Floor:           rr.cell(ColFloor),
		PredictedRent:   lenientDecimal(rr.cell(ColPredictedRent)),

		TenantName:          rr.cell(ColTenantName),
		TelephoneNumber:     rr.cell(ColTelephoneNumber),
		PreviousPaymentDate: schedule.ParseDate(rr.cell(ColPreviousPaymentDate)),
		NextPaymentDueDate:  schedule.ParseDate(rr.cell(ColNextPaymentDueDate)),

		// The persisted status cell is display-only. It goes stale the
		// instant time passes, so it is never read back as truth.
		PaymentStatus: schedule.StatusUnknown,
	}
}

func lenientInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func lenientFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func lenientDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// CSV STREAMS
// =============================================================================

// WriteCSV writes the header row followed by one row per record.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records from a CSV stream. An empty stream yields no
// records. Each record is assigned a fresh ID - the flat file carries
// no identity beyond position.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may predate newer columns

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := decodeRecord(rowReader{index: index, row: row})
		rec.ID = NewRecordID()
		records = append(records, rec)
	}
	return records, nil
}
