/*
Package sqlite provides a SQLite-backed History implementation.

PURPOSE:
  A database alternative to the flat CSV file, for deployments where
  the history should live in SQLite instead. The contract is the same:
  load everything at startup, rewrite everything after each mutation.

WHY FULL REWRITES?
  The record sequence is small (one interactive session's prediction
  history) and ordering is positional. Rewriting the table inside a
  transaction keeps the semantics identical to the CSV backend - either
  the whole new sequence is durable or the previous one survives.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

STATUS COLUMN:
  payment_status is persisted for inspection with external tools, but
  the codec-level rule applies here too: Load returns Unknown and the
  store recomputes against a fresh "today".

USAGE:
  history, err := sqlite.New("./tenant_history.db")
  if err != nil {
      log.Fatal(err)
  }
  defer history.Close()

SEE ALSO:
  - tenancy/store.go: History interface
  - store/csvfile: Flat-file alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shopspring/decimal"

	"github.com/warp/tenancy-engine/schedule"
	"github.com/warp/tenancy-engine/tenancy"
)

// History implements tenancy.History using SQLite.
type History struct {
	db *sql.DB
}

// New creates a SQLite history at the given path. Use ":memory:" for
// an in-memory database.
func New(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// migrate creates the database schema.
func (h *History) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenant_records (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		bhk INTEGER NOT NULL,
		size REAL NOT NULL,
		bathroom INTEGER NOT NULL,
		furnishing_status TEXT NOT NULL,
		tenant_preferred TEXT NOT NULL,
		city TEXT NOT NULL,
		point_of_contact TEXT NOT NULL,
		area_locality TEXT NOT NULL,
		posted_on TEXT NOT NULL,
		area_type TEXT NOT NULL,
		floor TEXT NOT NULL,
		predicted_rent TEXT NOT NULL,
		tenant_name TEXT NOT NULL DEFAULT '',
		telephone_number TEXT NOT NULL DEFAULT '',
		previous_payment_date TEXT NOT NULL DEFAULT '',
		next_payment_due_date TEXT NOT NULL DEFAULT '',
		payment_status TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_tenant_records_position
		ON tenant_records(position);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Load returns all records in insertion order.
func (h *History) Load(ctx context.Context) ([]tenancy.Record, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, bhk, size, bathroom, furnishing_status, tenant_preferred,
		       city, point_of_contact, area_locality, posted_on, area_type,
		       floor, predicted_rent, tenant_name, telephone_number,
		       previous_payment_date, next_payment_due_date
		FROM tenant_records
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []tenancy.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (tenancy.Record, error) {
	var (
		rec                      tenancy.Record
		id, rent                 string
		postedOn, prevPay, dueAt string
	)
	err := rows.Scan(
		&id, &rec.BHK, &rec.Size, &rec.Bathroom, &rec.Furnishing,
		&rec.TenantPreferred, &rec.City, &rec.PointOfContact,
		&rec.AreaLocality, &postedOn, &rec.AreaType, &rec.Floor, &rent,
		&rec.TenantName, &rec.TelephoneNumber, &prevPay, &dueAt,
	)
	if err != nil {
		return rec, fmt.Errorf("scan record: %w", err)
	}

	rec.ID = tenancy.RecordID(id)
	rec.PostedOn = schedule.ParseDate(postedOn)
	rec.PreviousPaymentDate = schedule.ParseDate(prevPay)
	rec.NextPaymentDueDate = schedule.ParseDate(dueAt)
	rec.PaymentStatus = schedule.StatusUnknown // recomputed by the store

	if d, err := decimal.NewFromString(rent); err == nil {
		rec.PredictedRent = d
	} else {
		rec.PredictedRent = decimal.Zero
	}
	return rec, nil
}

// Flush durably replaces the stored sequence inside one transaction.
func (h *History) Flush(ctx context.Context, records []tenancy.Record) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tenant_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tenant_records (
			id, position, bhk, size, bathroom, furnishing_status,
			tenant_preferred, city, point_of_contact, area_locality,
			posted_on, area_type, floor, predicted_rent, tenant_name,
			telephone_number, previous_payment_date, next_payment_due_date,
			payment_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for position, rec := range records {
		id := rec.ID
		if id == "" {
			id = tenancy.NewRecordID()
		}
		_, err := stmt.ExecContext(ctx,
			string(id), position, rec.BHK, rec.Size, rec.Bathroom,
			string(rec.Furnishing), string(rec.TenantPreferred), rec.City,
			string(rec.PointOfContact), rec.AreaLocality,
			rec.PostedOn.String(), string(rec.AreaType), rec.Floor,
			rec.PredictedRent.String(), rec.TenantName, rec.TelephoneNumber,
			rec.PreviousPaymentDate.String(), rec.NextPaymentDueDate.String(),
			string(rec.PaymentStatus),
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", position, err)
		}
	}

	return tx.Commit()
}
