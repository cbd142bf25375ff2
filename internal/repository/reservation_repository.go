package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nivusoft/nivugate/internal/model"
)

// ReservationRepo provides access to the reservations table.  The table
// carries a UNIQUE index on reservation_code; Insert surfaces violations
// as ErrDuplicateCode so the code generator can retry with a fresh token.
//
// CheckIn is the only method that moves a reservation out of the
// "created" state.  It is a single guarded UPDATE so the database, not
// the application, arbitrates concurrent redemption attempts.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, event_id, first_name, last_name, email, phone, instagram,
	   reservation_code, status, used_at, scan_count, last_scan_at, scanned_by_operator_id,
	   email_send_status, email_error, email_sent_at, created_at, updated_at`

func scanReservation(scan func(dest ...any) error) (*model.Reservation, error) {
	var res model.Reservation
	var instagram, sendStatus, sendErr sql.NullString
	var usedAt, lastScanAt, sentAt sql.NullTime
	var scannedBy sql.NullInt64
	err := scan(&res.ID, &res.EventID, &res.FirstName, &res.LastName, &res.Email, &res.Phone,
		&instagram, &res.ReservationCode, &res.Status, &usedAt, &res.ScanCount, &lastScanAt,
		&scannedBy, &sendStatus, &sendErr, &sentAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if instagram.Valid {
		v := instagram.String
		res.Instagram = &v
	}
	if usedAt.Valid {
		t := usedAt.Time
		res.UsedAt = &t
	}
	if lastScanAt.Valid {
		t := lastScanAt.Time
		res.LastScanAt = &t
	}
	if scannedBy.Valid {
		id := uint64(scannedBy.Int64)
		res.ScannedByID = &id
	}
	if sendStatus.Valid {
		v := sendStatus.String
		res.EmailSendStatus = &v
	}
	if sendErr.Valid {
		v := sendErr.String
		res.EmailError = &v
	}
	if sentAt.Valid {
		t := sentAt.Time
		res.EmailSentAt = &t
	}
	return &res, nil
}

// Insert persists a new reservation in the "created" state and populates
// the generated ID and timestamps on the provided model.  A collision on
// the reservation_code UNIQUE index returns ErrDuplicateCode; the insert
// itself is what proves code uniqueness, an existence pre-check alone
// cannot.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations
			(event_id, first_name, last_name, email, phone, instagram, reservation_code, status, scan_count)
		 VALUES (?,?,?,?,?,?,?,?,0)`,
		res.EventID, res.FirstName, res.LastName, res.Email, res.Phone, res.Instagram,
		res.ReservationCode, res.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCode
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	stored, err := r.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByID fetches a reservation by primary key.  Returns
// ErrReservationNotFound when it does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByCode fetches a reservation by its secret code.  Returns
// ErrReservationNotFound when no reservation carries the code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE reservation_code = ?`, code)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ListByEvent returns all reservations for an event, most recently
// created first.  An empty slice is returned when none exist.
func (r *ReservationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE event_id = ? ORDER BY created_at DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckIn attempts the single-use transition created -> checked_in as
// one guarded UPDATE.  It reports true when this call won the
// transition and false when the reservation was not in a redeemable
// state (already used, or the code does not exist).  The WHERE clause
// is the entire concurrency story: two racing scanners both execute the
// statement, MySQL serializes them on the row lock, and only the first
// finds status='created' still true.
func (r *ReservationRepo) CheckIn(ctx context.Context, code string, operatorID *uint64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations
			SET status = ?, used_at = ?, scanned_by_operator_id = ?, last_scan_at = ?, scan_count = scan_count + 1
		  WHERE reservation_code = ? AND status = ? AND used_at IS NULL`,
		model.ReservationStatusCheckedIn, at.UTC(), operatorID, at.UTC(),
		code, model.ReservationStatusCreated)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetDeliveryResult records the outcome of the confirmation email
// attempt.  It touches only the email_* columns so it can never clobber
// a concurrent check-in writing the status/used_at group of the same
// row.
func (r *ReservationRepo) SetDeliveryResult(ctx context.Context, id uint64, status string, sentAt *time.Time, errDetail *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET email_send_status = ?, email_error = ?, email_sent_at = ? WHERE id = ?`,
		status, errDetail, sentAt, id)
	return err
}
