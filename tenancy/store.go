/*
store.go - Record store: ordered tenant records with derived status

PURPOSE:
  RecordStore owns the ordered sequence of Records and mediates every
  mutation and query. It is the process-wide state of the application,
  made explicit: the caller constructs it, injects the durable History
  collaborator, and every mutation flushes the full sequence.

CRITICAL INVARIANTS:
  1. Insertion order is stable: Append always goes to the end.
  2. Status is derived: RecomputeStatuses runs against a caller-supplied
     "today" before any display or query; persisted status is never
     trusted.
  3. Deletion is positional: DeleteAt(i) removes row i and shifts later
     rows down. Indices are NOT stable identifiers - a delete
     invalidates every index at or above the deleted one. Callers
     holding a stale index after a delete can hit the wrong row; use
     Record.ID when a stable key is needed.
  4. Flush-after-mutation: Append and DeleteAt rewrite the durable
     history before returning. The flush is atomic-or-failed; there is
     no partial-write recovery.

CONCURRENCY:
  The source system is single-session, but the store still serializes
  mutations with a mutex so an HTTP deployment with concurrent
  requests needs no re-architecture.

SEE ALSO:
  - types.go: Record definition
  - store/csvfile, store/sqlite: History implementations
  - schedule/status.go: The classifier RecomputeStatuses applies
*/
package tenancy

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/schedule"
)

// =============================================================================
// HISTORY - Durable persistence collaborator
// =============================================================================

// History persists the full record sequence. Load runs once at session
// start; Flush rewrites everything after each mutation.
type History interface {
	// Load returns all persisted records in insertion order. A missing
	// backing file yields an empty sequence, not an error.
	Load(ctx context.Context) ([]Record, error)

	// Flush durably replaces the persisted sequence with records.
	Flush(ctx context.Context, records []Record) error
}

// =============================================================================
// RECORD STORE
// =============================================================================

// RecordStore is the ordered, row-addressable collection of tenant
// records. Construct with NewRecordStore, then LoadHistory once before
// serving requests.
type RecordStore struct {
	mu      sync.RWMutex
	history History
	records []Record
}

func NewRecordStore(history History) *RecordStore {
	return &RecordStore{history: history}
}

// LoadHistory populates the store from the durable collaborator.
// Loaded statuses are not meaningful until the first recompute.
func (s *RecordStore) LoadHistory(ctx context.Context) error {
	records, err := s.history.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	return nil
}

// Len returns the current number of records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Append adds a record at the end and flushes. Records are never
// rejected for business reasons - optional-field coercion happens in
// the caller before append. A missing ID is assigned here.
func (s *RecordStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = NewRecordID()
	}
	s.records = append(s.records, rec)
	return s.flushLocked(ctx)
}

// RecomputeStatuses rederives PaymentStatus for every record against
// the given "today". Must run before any display or query. Idempotent
// for a fixed today.
func (s *RecordStore) RecomputeStatuses(today schedule.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		s.records[i].PaymentStatus = schedule.Classify(s.records[i].NextPaymentDueDate, today)
	}
}

// DeleteAt removes the record at the given position and flushes.
// Out-of-range positions fail with IndexOutOfRangeError and leave the
// store unchanged. On success every later index shifts down by one.
func (s *RecordStore) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return &IndexOutOfRangeError{Index: index, Length: len(s.records)}
	}

	s.records = append(s.records[:index], s.records[index+1:]...)
	return s.flushLocked(ctx)
}

// ExportSnapshot returns a copy of the full sequence in insertion
// order. Mutations after the snapshot is taken do not leak into it.
func (s *RecordStore) ExportSnapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// SummaryCounts returns the count of each payment status across all
// records. Every status bucket is present, zero or not, and the counts
// sum to Len(). Reflects the "today" of the latest recompute.
func (s *RecordStore) SummaryCounts() map[schedule.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[schedule.Status]int, 5)
	for _, status := range schedule.AllStatuses() {
		counts[status] = 0
	}
	for _, rec := range s.records {
		counts[rec.PaymentStatus]++
	}
	return counts
}

// TenantSummaries returns the condensed management view, in insertion
// order.
func (s *RecordStore) TenantSummaries() []TenantSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]TenantSummary, len(s.records))
	for i, rec := range s.records {
		summaries[i] = TenantSummary{
			TenantName:          rec.TenantName,
			TelephoneNumber:     rec.TelephoneNumber,
			City:                rec.City,
			AreaLocality:        rec.AreaLocality,
			PredictedRent:       rec.PredictedRent,
			PreviousPaymentDate: rec.PreviousPaymentDate,
			NextPaymentDueDate:  rec.NextPaymentDueDate,
			PaymentStatus:       rec.PaymentStatus,
		}
	}
	return summaries
}

// flushLocked rewrites the durable history. Caller holds the lock.
func (s *RecordStore) flushLocked(ctx context.Context) error {
	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	if err := s.history.Flush(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}
	return nil
}

// =============================================================================
// RENT DISTRIBUTION - Histogram over predicted rent
// =============================================================================

// RentBucket is one histogram bucket: [Low, High) except the last
// bucket, which includes its upper bound.
type RentBucket struct {
	Low   decimal.Decimal
	High  decimal.Decimal
	Count int
}

// RentDistribution buckets predicted rents into bins equal-width
// buckets. An empty store yields nil; identical rents collapse into a
// single bucket.
func (s *RecordStore) RentDistribution(bins int) []RentBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 || bins <= 0 {
		return nil
	}

	min, max := s.records[0].PredictedRent, s.records[0].PredictedRent
	for _, rec := range s.records[1:] {
		if rec.PredictedRent.LessThan(min) {
			min = rec.PredictedRent
		}
		if rec.PredictedRent.GreaterThan(max) {
			max = rec.PredictedRent
		}
	}

	if min.Equal(max) {
		return []RentBucket{{Low: min, High: max, Count: len(s.records)}}
	}

	width := max.Sub(min).Div(decimal.NewFromInt(int64(bins)))
	buckets := make([]RentBucket, bins)
	for i := range buckets {
		buckets[i].Low = min.Add(width.Mul(decimal.NewFromInt(int64(i))))
		buckets[i].High = buckets[i].Low.Add(width)
	}
	buckets[bins-1].High = max

	for _, rec := range s.records {
		i := int(rec.PredictedRent.Sub(min).Div(width).IntPart())
		if i >= bins {
			i = bins - 1 // max lands in the last bucket
		}
		buckets[i].Count++
	}
	return buckets
}
